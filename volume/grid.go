// Package volume reads structured-point volume snapshots, contours them and
// renders numbered image sequences.
package volume

import "math"

// Grid is a regular 3D lattice of scalar samples. X varies fastest.
type Grid struct {
	Name    string
	Dims    [3]int
	Origin  [3]float64
	Spacing [3]float64
	Values  []float64
}

// NewGrid creates a zeroed grid with unit spacing.
func NewGrid(nx, ny, nz int) *Grid {
	g := new(Grid)
	g.Dims = [3]int{nx, ny, nz}
	g.Spacing = [3]float64{1, 1, 1}
	g.Values = make([]float64, nx*ny*nz)
	return g
}

// Index returns the position of sample (x, y, z) in Values.
func (g *Grid) Index(x, y, z int) int {
	return x + g.Dims[0]*(y+g.Dims[1]*z)
}

// At returns sample (x, y, z).
func (g *Grid) At(x, y, z int) float64 {
	return g.Values[g.Index(x, y, z)]
}

// Range returns the smallest and largest sample.
func (g *Grid) Range() (min, max float64) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	min, max = g.Values[0], g.Values[0]
	for _, v := range g.Values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Bounds returns the corners of the box spanned by the samples.
func (g *Grid) Bounds() (lo, hi [3]float64) {
	for a := range lo {
		lo[a] = g.Origin[a]
		hi[a] = g.Origin[a] + float64(g.Dims[a]-1)*g.Spacing[a]
	}
	return lo, hi
}

// Sample interpolates the grid trilinearly at a point in world coordinates.
// It reports false for points outside Bounds.
func (g *Grid) Sample(p [3]float64) (float64, bool) {
	var i [3]int
	var f [3]float64
	for a := range p {
		var ok bool
		if i[a], f[a], ok = g.cell(a, p[a]); !ok {
			return 0, false
		}
	}

	var v float64
	for corner := 0; corner < 8; corner++ {
		w := 1.0
		var c [3]int
		for a := range c {
			c[a] = i[a]
			if corner&(1<<a) == 0 {
				w *= 1 - f[a]
			} else {
				c[a]++
				w *= f[a]
			}
		}
		if w == 0 {
			continue
		}
		v += w * g.At(c[0], c[1], c[2])
	}
	return v, true
}

// cell finds the sample below x along axis a, and how far x is towards the next one.
func (g *Grid) cell(a int, x float64) (int, float64, bool) {
	const eps = 1e-9
	t := (x - g.Origin[a]) / g.Spacing[a]
	n := g.Dims[a]
	if t < -eps || t > float64(n-1)+eps {
		return 0, 0, false
	}
	if n == 1 {
		return 0, 0, true
	}
	i := int(math.Floor(t))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	f := math.Min(math.Max(t-float64(i), 0), 1)
	return i, f, true
}
