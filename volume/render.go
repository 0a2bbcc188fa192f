package volume

import (
	"image"
	"math"

	"github.com/fogleman/fauxgl"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/matt-g-everett/rdtools/util"
)

// Renderer draws the iso-surface of a grid as seen from the -z side, looking
// along +z with an orthographic camera.
type Renderer struct {
	Iso   float64
	Scale int
	// Cells is the marching cubes resolution along the longest side. Zero
	// uses one cube per sample.
	Cells int
	// Antialias renders this many times larger and scales down.
	Antialias     int
	Background    colorful.Color
	Outline       colorful.Color
	ShowOutline   bool
	Gradient      GradientTable
	Chroma        float64
	Ambient       float64
	Specular      float64
	SpecularPower float64
	// Light points from the surface towards the light.
	Light [3]float64
	lut   []float64
}

// NewRenderer creates a Renderer with a head-on light, the default gradient
// and the bounding box drawn as a wireframe.
func NewRenderer(iso float64) *Renderer {
	r := new(Renderer)
	r.Iso = iso
	r.Scale = 1
	r.Antialias = 2
	r.Background = colorful.Color{R: 0, G: 0, B: 0.02}
	r.Outline = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	r.ShowOutline = true
	r.Gradient = DefaultGradient
	r.Chroma = 0.8
	r.Ambient = 0.15
	r.Specular = 0.5
	r.SpecularPower = 100
	r.Light = [3]float64{0.3, 0.3, -1}
	r.lut = util.GenerateShadingLut(256)
	return r
}

// Render returns an image of the contoured grid, Dims[0]*Scale wide and
// Dims[1]*Scale high.
func (r *Renderer) Render(g *Grid) image.Image {
	scale := max(r.Scale, 1)
	aa := max(r.Antialias, 1)
	w, h := g.Dims[0]*scale, g.Dims[1]*scale

	ctx := fauxgl.NewContext(w*aa, h*aa)
	ctx.ClearColorBufferWith(toColor(r.Background))

	lo, hi := g.Bounds()
	matrix := camera(lo, hi, g.Spacing, float64(w)/float64(h))

	ctx.Shader = &surfaceShader{
		r:      r,
		matrix: matrix,
		light:  fauxgl.V(r.Light[0], r.Light[1], r.Light[2]).Normalize(),
		front:  lo[2],
		depth:  hi[2] - lo[2],
	}
	ctx.DrawTriangles(Contour(g, r.Iso, r.Cells))

	if r.ShowOutline {
		ctx.Shader = fauxgl.NewSolidColorShader(matrix, toColor(r.Outline))
		ctx.DrawLines(boxEdges(lo, hi))
	}

	img := ctx.Image()
	if aa == 1 {
		return img
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// camera looks along +z at the centre of the box, from in front of it, with
// a quarter of the box as margin.
func camera(lo, hi, spacing [3]float64, aspect float64) fauxgl.Matrix {
	const margin = 1.25
	cx, cy := (lo[0]+hi[0])/2, (lo[1]+hi[1])/2
	hw := math.Max((hi[0]-lo[0])/2, spacing[0]) * margin
	hh := math.Max((hi[1]-lo[1])/2, spacing[1]) * margin
	if hw/hh < aspect {
		hw = hh * aspect
	} else {
		hh = hw / aspect
	}

	// The surface can reach one sample beyond the grid.
	gap := 2*spacing[2] + 1
	eye := fauxgl.V(cx, cy, lo[2]-gap)
	view := fauxgl.LookAt(eye, fauxgl.V(cx, cy, lo[2]), fauxgl.V(0, 1, 0))
	far := hi[2] - lo[2] + 2*gap
	return fauxgl.Orthographic(-hw, hw, -hh, hh, 0.01, far).Mul(view)
}

// boxEdges returns the twelve edges of the box with corners lo and hi.
func boxEdges(lo, hi [3]float64) []*fauxgl.Line {
	corner := func(i int) fauxgl.Vertex {
		var p [3]float64
		for a := range p {
			p[a] = lo[a]
			if i&(1<<a) != 0 {
				p[a] = hi[a]
			}
		}
		return fauxgl.Vertex{Position: fauxgl.V(p[0], p[1], p[2])}
	}

	var lines []*fauxgl.Line
	for i := 0; i < 8; i++ {
		for a := 0; a < 3; a++ {
			if j := i | 1<<a; j != i {
				lines = append(lines, &fauxgl.Line{V1: corner(i), V2: corner(j)})
			}
		}
	}
	return lines
}

// surfaceShader lights the surface with diffuse and specular terms and
// colours it by depth through the gradient table.
type surfaceShader struct {
	r      *Renderer
	matrix fauxgl.Matrix
	light  fauxgl.Vector
	front  float64
	depth  float64
}

// toCamera points back along the view direction.
var toCamera = fauxgl.V(0, 0, -1)

func (s *surfaceShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.matrix.MulPositionW(v.Position)
	return v
}

func (s *surfaceShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	n := v.Normal
	if l := n.Length(); l == 0 || math.IsNaN(l) {
		n = toCamera
	} else {
		n = n.MulScalar(1 / l)
	}
	// Both sides of the surface are lit.
	if n.Dot(toCamera) < 0 {
		n = n.MulScalar(-1)
	}

	lambert := n.Dot(s.light)
	intensity := s.r.Ambient + (1-s.r.Ambient)*util.Lookup(s.r.lut, lambert)

	var specular float64
	if lambert > 0 {
		reflected := n.MulScalar(2 * lambert).Sub(s.light)
		if d := reflected.Dot(toCamera); d > 0 {
			specular = s.r.Specular * math.Pow(d, s.r.SpecularPower)
		}
	}

	t := 0.0
	if s.depth > 0 {
		t = (v.Position.Z - s.front) / s.depth
	}
	c := s.r.Gradient.GetColor(t, s.r.Chroma*intensity, 0.1+0.8*intensity)
	c = colorful.Color{R: c.R + specular, G: c.G + specular, B: c.B + specular}
	return toColor(c)
}

func toColor(c colorful.Color) fauxgl.Color {
	c = c.Clamped()
	return fauxgl.Color{R: c.R, G: c.G, B: c.B, A: 1}
}
