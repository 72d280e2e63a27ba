package configs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration(t *testing.T) {
	defer func() { Config = Default() }()

	t.Run("missing", func(t *testing.T) {
		Config = Default()
		p := filepath.Join(t.TempDir(), "none.toml")
		assert.NoError(t, LoadConfiguration(p, false))
		assert.Error(t, LoadConfiguration(p, true))
		assert.NoError(t, LoadConfiguration("", true))
		assert.Equal(t, Default(), Config)
	})

	t.Run("file", func(t *testing.T) {
		Config = Default()
		p := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(p, []byte(`
[main]
log_level = "debug"

[images]
output_dir = "/tmp/results"
format = "jpeg"

[transform]
edge_threshold = 35
`), 0o600))

		require.NoError(t, LoadConfiguration(p, true))
		assert.Equal(t, "debug", Config.Main.LogLevel)
		assert.Equal(t, "/tmp/results", Config.Images.OutputDir)
		assert.Equal(t, "jpeg", Config.Images.Format)
		assert.Equal(t, 35, Config.Transform.EdgeThreshold)

		// untouched defaults
		assert.Equal(t, 85, Config.Images.Quality)
		assert.Equal(t, 1, Config.Transform.Workers)
		assert.Equal(t, DefaultNameTemplate, Config.Images.NameTemplate)
	})

	t.Run("invalid", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(p, []byte("[main\n"), 0o600))
		assert.Error(t, LoadConfiguration(p, true))
	})
}

func TestWriteConfig(t *testing.T) {
	defer func() { Config = Default() }()

	Config = Default()
	Config.Transform.EdgeThreshold = 20
	Config.Images.OutputDir = "results"

	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteConfig(p))

	Config = Default()
	require.NoError(t, LoadConfiguration(p, true))
	assert.Equal(t, 20, Config.Transform.EdgeThreshold)
	assert.Equal(t, "results", Config.Images.OutputDir)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf))
	assert.Contains(t, buf.String(), "[transform]")
	assert.Contains(t, buf.String(), "edge_threshold = 20")
}

func TestValidate(t *testing.T) {
	defer func() { Config = Default() }()

	Config = Default()
	assert.NoError(t, Validate())

	tests := []struct {
		name   string
		update func()
		key    string
	}{
		{"log level", func() { Config.Main.LogLevel = "loud" }, "main"},
		{"quality", func() { Config.Images.Quality = 101 }, "images"},
		{"format", func() { Config.Images.Format = "webp" }, "images"},
		{"template", func() { Config.Images.NameTemplate = "{{ .Base" }, "images"},
		{"output dir", func() { Config.Images.OutputDir = "" }, "images"},
		{"max pixels", func() { Config.Images.MaxPixels = -1 }, "images"},
		{"threshold", func() { Config.Transform.EdgeThreshold = -1 }, "transform"},
		{"workers", func() { Config.Transform.Workers = 0 }, "transform"},
	}

	for _, x := range tests {
		t.Run(x.name, func(t *testing.T) {
			Config = Default()
			x.update()
			err := Validate()
			require.Error(t, err)
			errs, ok := err.(validation.Errors)
			require.True(t, ok)
			assert.Contains(t, errs, x.key)
			assert.Len(t, errs, 1)
		})
	}

	t.Run("jpg alias", func(t *testing.T) {
		Config = Default()
		Config.Images.Format = "jpg"
		assert.NoError(t, Validate())
	})
}
