package volume

import (
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/fogleman/fauxgl"
)

// Surface is the iso-surface of a grid seen as a signed field that is
// negative where the grid is above Iso. It implements sdf.SDF3.
type Surface struct {
	Grid *Grid
	Iso  float64
	// pad is the value read beyond the edges of the grid.
	pad float64
}

// NewSurface creates the iso-surface of g at iso. Beyond its edges the grid
// reads as its smallest sample, or as below iso when every sample is at or
// above it, so regions touching the edge are closed off there.
func NewSurface(g *Grid, iso float64) *Surface {
	lo, hi := g.Range()
	pad := lo
	if pad >= iso {
		pad = iso - (hi - lo) - 1
	}
	return &Surface{Grid: g, Iso: iso, pad: pad}
}

// Evaluate returns Iso minus the interpolated grid value at p.
func (s *Surface) Evaluate(p v3.Vec) float64 {
	return s.at([3]float64{p.X, p.Y, p.Z})
}

func (s *Surface) at(p [3]float64) float64 {
	v, ok := s.Grid.Sample(p)
	if !ok {
		v = s.pad
	}
	return s.Iso - v
}

// BoundingBox is the extent of the grid grown by one sample on every side.
func (s *Surface) BoundingBox() sdf.Box3 {
	lo, hi := s.Grid.Bounds()
	sp := s.Grid.Spacing
	return sdf.Box3{
		Min: v3.Vec{X: lo[0] - sp[0], Y: lo[1] - sp[1], Z: lo[2] - sp[2]},
		Max: v3.Vec{X: hi[0] + sp[0], Y: hi[1] + sp[1], Z: hi[2] + sp[2]},
	}
}

// Normal is the outward unit normal at p, from central differences of the
// field. It is zero where the field is flat.
func (s *Surface) Normal(p [3]float64) fauxgl.Vector {
	var n [3]float64
	for a := range n {
		h := s.Grid.Spacing[a] / 2
		fwd, back := p, p
		fwd[a] += h
		back[a] -= h
		n[a] = (s.at(fwd) - s.at(back)) / (2 * h)
	}
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 || math.IsNaN(l) {
		return fauxgl.Vector{}
	}
	return fauxgl.Vector{X: n[0] / l, Y: n[1] / l, Z: n[2] / l}
}

// Contour extracts the iso-surface of g as a triangle mesh with marching
// cubes, sampling cells cubes along the longest side. With cells <= 0 there
// is one cube per sample.
func Contour(g *Grid, iso float64, cells int) []*fauxgl.Triangle {
	if cells <= 0 {
		for _, n := range g.Dims {
			if n+1 > cells {
				cells = n + 1
			}
		}
	}

	s := NewSurface(g, iso)
	var out []*fauxgl.Triangle
	for _, t := range render.ToTriangles(s, render.NewMarchingCubesUniform(cells)) {
		tri := &fauxgl.Triangle{
			V1: s.vertex(t[0]),
			V2: s.vertex(t[1]),
			V3: s.vertex(t[2]),
		}
		out = append(out, tri)
	}
	return out
}

func (s *Surface) vertex(p v3.Vec) fauxgl.Vertex {
	pos := [3]float64{p.X, p.Y, p.Z}
	return fauxgl.Vertex{
		Position: fauxgl.Vector{X: p.X, Y: p.Y, Z: p.Z},
		Normal:   s.Normal(pos),
	}
}
