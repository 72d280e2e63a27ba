package img

import (
	"fmt"

	"github.com/thoas/go-funk"
)

// Params holds the per invocation parameters of an operation.
// Operations ignore the parameters they don't use.
type Params struct {
	Threshold int
}

// Operation is a named transform.
type Operation struct {
	Name        string
	Description string
	Apply       func(*Image, Params) *Image
}

// UnknownOperationError is returned by Lookup when no operation
// has the requested name.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// Original is the identity operation. It returns a copy of its input.
var Original = &Operation{
	Name:        "original",
	Description: "Copy the image unchanged",
	Apply: func(m *Image, _ Params) *Image {
		return m.Clone()
	},
}

var operations = []*Operation{
	{
		Name:        "grayscale",
		Description: "Convert the image to shades of gray",
		Apply: func(m *Image, _ Params) *Image {
			return Grayscale(m)
		},
	},
	{
		Name:        "blackwhite",
		Description: "Convert the image to pure black and white",
		Apply: func(m *Image, _ Params) *Image {
			return BlackAndWhite(m)
		},
	},
	{
		Name:        "edges",
		Description: "Outline the image, edges in black",
		Apply: func(m *Image, p Params) *Image {
			return EdgeDetection(m, p.Threshold)
		},
	},
	{
		Name:        "reflect",
		Description: "Mirror the image horizontally",
		Apply: func(m *Image, _ Params) *Image {
			return Reflect(m)
		},
	},
	{
		Name:        "rotate",
		Description: "Rotate the image by 90 degrees clockwise",
		Apply: func(m *Image, _ Params) *Image {
			return RotateClockwise(m)
		},
	},
	Original,
}

// Operations returns the names of all the available operations.
func Operations() []string {
	return funk.Map(operations, func(o *Operation) string {
		return o.Name
	}).([]string)
}

// Lookup returns the operation with the given name.
func Lookup(name string) (*Operation, error) {
	if o, ok := funk.Find(operations, func(o *Operation) bool {
		return o.Name == name
	}).(*Operation); ok {
		return o, nil
	}
	return nil, &UnknownOperationError{name}
}
