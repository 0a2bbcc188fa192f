package scene

import (
	"errors"
	"fmt"

	"github.com/fogleman/fauxgl"
)

// ErrNoTriangles is returned for a mesh file without any faces.
var ErrNoTriangles = errors.New("mesh has no triangles")

// A Decoder reads one mesh file format.
type Decoder interface {
	Decode(path string) (*fauxgl.Mesh, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (*fauxgl.Mesh, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (*fauxgl.Mesh, error) {
	return f(path)
}

// Decoders maps a lower-case file extension to its decoder.
var Decoders = map[string]Decoder{
	".obj": DecoderFunc(fauxgl.LoadOBJ),
	".ply": DecoderFunc(fauxgl.LoadPLY),
	".stl": DecoderFunc(fauxgl.LoadSTL),
}

// decode runs dec, turning a panic on malformed input into an error.
func decode(dec Decoder, path string) (geometry *fauxgl.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			geometry, err = nil, fmt.Errorf("malformed mesh: %v", r)
		}
	}()
	return dec.Decode(path)
}
