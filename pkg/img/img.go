// Package img provides an RGB pixel grid and whole image transforms
// working on it: grayscale, black and white, edge detection, reflection
// and rotation.
//
// Every transform reads its input and returns a new image; inputs are
// never modified.
package img

import (
	"fmt"
	"io"
)

// LoaderFunc decodes an image from a reader. It returns the image
// and the name of its source format.
type LoaderFunc func(io.Reader) (*Image, string, error)

var loaders = map[string]LoaderFunc{}

// AddLoader adds a new image loader to the available loaders.
func AddLoader(name string, fn LoaderFunc) {
	loaders[name] = fn
}

// New loads an image using the given loader.
func New(loader string, r io.Reader) (*Image, string, error) {
	fn, ok := loaders[loader]
	if !ok {
		return nil, "", fmt.Errorf("loader %s not found", loader)
	}

	return fn(r)
}
