package stream

import (
	"io"

	"gopkg.in/yaml.v2"
)

// Config for every rdtools command.
type Config struct {
	Input struct {
		Pattern  string `yaml:"pattern"`
		Material string `yaml:"material"`
		Color    string `yaml:"color"`
	} `yaml:"input"`
	Sequence struct {
		Mode      string  `yaml:"mode"`
		Scheme    string  `yaml:"scheme"`
		FrameRate float64 `yaml:"frameRate"`
		Loops     int     `yaml:"loops"`
	} `yaml:"sequence"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Qos      byte   `yaml:"qos"`
		Topics   struct {
			Frame string `yaml:"frame"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Render struct {
		Pattern     string  `yaml:"pattern"`
		OutDir      string  `yaml:"outDir"`
		NameFormat  string  `yaml:"nameFormat"`
		Iso         float64 `yaml:"iso"`
		Scale       int     `yaml:"scale"`
		Cells       int     `yaml:"cells"`
		HideOutline bool    `yaml:"hideOutline"`
		Background  string  `yaml:"background"`
	} `yaml:"render"`
	Preview struct {
		OutDir     string `yaml:"outDir"`
		NameFormat string `yaml:"nameFormat"`
		Width      int    `yaml:"width"`
		Height     int    `yaml:"height"`
		Background string `yaml:"background"`
	} `yaml:"preview"`
	Stencil struct {
		Dims      int     `yaml:"dims"`
		Powers    []int   `yaml:"powers"`
		Sigma     float64 `yaml:"sigma"`
		Truncate  float64 `yaml:"truncate"`
		Style     string  `yaml:"style"`
		Isotropic bool    `yaml:"isotropic"`
	} `yaml:"stencil"`
	API struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
}

// DecodeConfig reads a YAML config and fills in defaults for anything unset.
func DecodeConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, err
	}
	c.SetDefaults()
	return c, nil
}

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.Input.Pattern == "" {
		c.Input.Pattern = "meshes/*.obj"
	}
	if c.Input.Material == "" {
		c.Input.Material = "sequence"
	}
	if c.Sequence.Mode == "" {
		c.Sequence.Mode = "keyframe"
	}
	if c.Sequence.Scheme == "" {
		c.Sequence.Scheme = "zero-based"
	}
	if c.Sequence.FrameRate <= 0 {
		c.Sequence.FrameRate = 24
	}
	if c.Sequence.FrameRate > MaxFrameRate {
		c.Sequence.FrameRate = MaxFrameRate
	}
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "rdtools"
	}
	if c.Mqtt.Topics.Frame == "" {
		c.Mqtt.Topics.Frame = "rdtools/frame"
	}
	if c.Render.Pattern == "" {
		c.Render.Pattern = "snapshots/*.vtk"
	}
	if c.Render.OutDir == "" {
		c.Render.OutDir = "frames"
	}
	if c.Render.NameFormat == "" {
		c.Render.NameFormat = "frame_%04d.png"
	}
	if c.Render.Scale <= 0 {
		c.Render.Scale = 1
	}
	if c.Render.Background == "" {
		c.Render.Background = "#000005"
	}
	if c.Preview.OutDir == "" {
		c.Preview.OutDir = "preview"
	}
	if c.Preview.NameFormat == "" {
		c.Preview.NameFormat = "preview_%04d.png"
	}
	if c.Preview.Width <= 0 {
		c.Preview.Width = 640
	}
	if c.Preview.Height <= 0 {
		c.Preview.Height = 480
	}
	if c.Preview.Background == "" {
		c.Preview.Background = c.Render.Background
	}
	if c.Stencil.Dims == 0 {
		c.Stencil.Dims = 2
	}
	if len(c.Stencil.Powers) == 0 {
		c.Stencil.Powers = []int{1, 2, 3}
	}
	if c.Stencil.Sigma <= 0 {
		c.Stencil.Sigma = 1
	}
	if c.Stencil.Truncate <= 0 {
		c.Stencil.Truncate = 4
	}
	if c.Stencil.Style == "" {
		c.Stencil.Style = "go"
	}
}
