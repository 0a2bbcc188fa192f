package scene

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Name      string
	Diffuse   colorful.Color
	Specular  colorful.Color
	Shininess float64
	Opacity   float64
}

// Light gray, used when a material is created by name only.
var defaultDiffuse = colorful.Color{R: 0.63, G: 0.63, B: 0.63}

// NewMaterial creates a Material with default colours.
func NewMaterial(name string) *Material {
	m := new(Material)
	m.Name = name
	m.Diffuse = defaultDiffuse
	m.Specular = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	m.Shininess = 30
	m.Opacity = 1
	return m
}

// SetDiffuseHex sets the diffuse colour from a "#rrggbb" string.
func (m *Material) SetDiffuseHex(hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return err
	}
	m.Diffuse = c
	return nil
}
