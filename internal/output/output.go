// Package output hands transformed images over to their destination.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/lithammer/shortuuid/v3"
	log "github.com/sirupsen/logrus"

	"github.com/imgmanip/imgmanip/pkg/img"
)

// Presenter receives the result of an operation and returns where
// it went.
type Presenter interface {
	Present(op string, m *img.Image) (string, error)
}

// PresenterFunc is an adapter to use a function as a Presenter.
type PresenterFunc func(op string, m *img.Image) (string, error)

// Present calls f(op, m).
func (f PresenterFunc) Present(op string, m *img.Image) (string, error) {
	return f(op, m)
}

// NameData is the data available to a file name template.
type NameData struct {
	Base   string
	Op     string
	Ext    string
	Format string
	Width  int
	Height int
	UID    string
}

// FilePresenter saves images into a directory.
type FilePresenter struct {
	Dir     string
	Source  string
	Format  string
	Quality int

	tmpl *template.Template
}

// NewFilePresenter returns a FilePresenter writing images derived from
// the source file into dir. The file names are given by the nameTemplate.
func NewFilePresenter(dir, source, format string, quality int, nameTemplate string) (*FilePresenter, error) {
	tmpl, err := template.New("name").Funcs(sprig.TxtFuncMap()).Parse(nameTemplate)
	if err != nil {
		return nil, err
	}

	return &FilePresenter{
		Dir:     dir,
		Source:  source,
		Format:  img.NormalizeFormat(format),
		Quality: quality,
		tmpl:    tmpl,
	}, nil
}

// Name returns the file name for an operation's result.
func (p *FilePresenter) Name(op string, m *img.Image) (string, error) {
	base := filepath.Base(p.Source)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	buf := new(bytes.Buffer)
	if err := p.tmpl.Execute(buf, NameData{
		Base:   base,
		Op:     op,
		Ext:    img.Extension(p.Format),
		Format: p.Format,
		Width:  m.Width(),
		Height: m.Height(),
		UID:    shortuuid.New(),
	}); err != nil {
		return "", err
	}

	name := strings.TrimSpace(buf.String())
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return name, nil
}

// Present encodes the image into a new file and returns its path.
func (p *FilePresenter) Present(op string, m *img.Image) (dest string, err error) {
	name, err := p.Name(op, m)
	if err != nil {
		return "", err
	}

	if err = createFolder(p.Dir); err != nil {
		return "", err
	}

	dest = filepath.Join(p.Dir, name)
	fd, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := fd.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dest) // nolint:errcheck
			dest = ""
		}
	}()

	if _, err = img.Encode(fd, m, p.Format, p.Quality); err != nil {
		return dest, err
	}

	log.WithFields(log.Fields{
		"op":   op,
		"path": dest,
	}).Debug("image saved")
	return dest, nil
}

func createFolder(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(name, 0o750); err != nil {
				return err
			}
		} else {
			return err
		}
	} else if !stat.IsDir() {
		return fmt.Errorf("'%s' is not a directory", name)
	}

	return nil
}
