package configs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml"
	log "github.com/sirupsen/logrus"
	"github.com/thoas/go-funk"

	"github.com/imgmanip/imgmanip/pkg/img"
)

// Because we don't need viper's mess for just storing configuration from
// a source.
type config struct {
	Main      configMain      `toml:"main"`
	Images    configImages    `toml:"images"`
	Transform configTransform `toml:"transform"`
}

type configMain struct {
	LogLevel string `toml:"log_level"`
	DevMode  bool   `toml:"dev_mode"`
}

type configImages struct {
	MaxPixels    int    `toml:"max_pixels"`
	OutputDir    string `toml:"output_dir"`
	Format       string `toml:"format"`
	Quality      int    `toml:"quality"`
	NameTemplate string `toml:"name_template"`
}

type configTransform struct {
	EdgeThreshold int `toml:"edge_threshold"`
	Workers       int `toml:"workers"`
}

// DefaultNameTemplate is the default template of output file names.
const DefaultNameTemplate = "{{ .Base }}-{{ .Op }}.{{ .Ext }}"

// Config holds the configuration data from configuration files
// or flags.
//
// This variable sets some default values that might be overwritten
// by a configuration file.
var Config = Default()

// Default returns a configuration with all the default values.
func Default() config {
	return config{
		Main: configMain{
			LogLevel: "info",
			DevMode:  false,
		},
		Images: configImages{
			MaxPixels:    img.MaxPixels,
			OutputDir:    "out",
			Format:       "png",
			Quality:      85,
			NameTemplate: DefaultNameTemplate,
		},
		Transform: configTransform{
			EdgeThreshold: 15,
			Workers:       1,
		},
	}
}

// LoadConfiguration loads the configuration file.
// When mustExist is false, a missing file is not an error.
func LoadConfiguration(configPath string, mustExist bool) error {
	if configPath == "" {
		return nil
	}

	fd, err := os.Open(configPath)
	if err != nil {
		if !mustExist && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer fd.Close()

	dec := toml.NewDecoder(fd)
	if err := dec.Decode(&Config); err != nil {
		return err
	}

	return nil
}

// Encode writes the configuration, as TOML, to w.
func Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).
		ArraysWithOneElementPerLine(true).
		Indentation("  ").
		Order(toml.OrderPreserve)

	return enc.Encode(Config)
}

// WriteConfig writes configuration to a file.
func WriteConfig(filename string) error {
	fd, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err = Encode(fd); err != nil {
		defer fd.Close()
		return err
	}

	return fd.Close()
}

// Validate checks the configuration values.
func Validate() error {
	return validation.Errors{
		"main": validation.ValidateStruct(&Config.Main,
			validation.Field(&Config.Main.LogLevel, validation.Required, validation.By(isLogLevel)),
		),
		"images": validation.ValidateStruct(&Config.Images,
			validation.Field(&Config.Images.MaxPixels, validation.Required, validation.Min(1)),
			validation.Field(&Config.Images.OutputDir, validation.Required),
			validation.Field(&Config.Images.Format, validation.By(IsFormat)),
			validation.Field(&Config.Images.Quality, validation.Required, validation.Min(1), validation.Max(100)),
			validation.Field(&Config.Images.NameTemplate, validation.Required, validation.By(isTemplate)),
		),
		"transform": validation.ValidateStruct(&Config.Transform,
			validation.Field(&Config.Transform.EdgeThreshold, ThresholdRules...),
			validation.Field(&Config.Transform.Workers, validation.Required, validation.Min(1)),
		),
	}.Filter()
}

// ThresholdRules are the validation rules of an edge detection threshold.
var ThresholdRules = []validation.Rule{validation.Min(0), validation.Max(256)}

// IsFormat checks that a value is an encodable image format.
func IsFormat(value interface{}) error {
	s, _ := value.(string)
	if !funk.ContainsString(img.Formats(), img.NormalizeFormat(s)) {
		return fmt.Errorf("must be one of %v", img.Formats())
	}
	return nil
}

func isLogLevel(value interface{}) error {
	s, _ := value.(string)
	_, err := log.ParseLevel(s)
	return err
}

func isTemplate(value interface{}) error {
	s, _ := value.(string)
	_, err := template.New("name").Funcs(sprig.TxtFuncMap()).Parse(s)
	return err
}
