// Package stencil derives discrete convolution stencils (Laplacian powers and
// Gaussians) and prints them as array literals.
package stencil

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Kernel is a dense N-dimensional array of weights stored in row-major order.
// Every axis has odd length so the kernel has a centre element.
type Kernel struct {
	Shape []int
	Data  []float64
}

// NewKernel creates a zeroed kernel with the given shape.
func NewKernel(shape ...int) *Kernel {
	n := 1
	for _, s := range shape {
		if s <= 0 || s%2 == 0 {
			panic(fmt.Sprintf("stencil: axis length %d is not a positive odd number", s))
		}
		n *= s
	}
	k := new(Kernel)
	k.Shape = append([]int(nil), shape...)
	k.Data = make([]float64, n)
	return k
}

// Dims is the number of axes.
func (k *Kernel) Dims() int {
	return len(k.Shape)
}

// Radius is the distance from the centre to the edge along axis.
func (k *Kernel) Radius(axis int) int {
	return k.Shape[axis] / 2
}

func (k *Kernel) index(idx []int) int {
	i := 0
	for axis, v := range idx {
		i = i*k.Shape[axis] + v
	}
	return i
}

// At returns the weight at an index counted from the corner.
func (k *Kernel) At(idx ...int) float64 {
	return k.Data[k.index(idx)]
}

// Set writes the weight at an index counted from the corner.
func (k *Kernel) Set(v float64, idx ...int) {
	k.Data[k.index(idx)] = v
}

// Offset returns the weight at an offset from the centre.
func (k *Kernel) Offset(off ...int) float64 {
	idx := make([]int, len(off))
	for axis, o := range off {
		idx[axis] = o + k.Radius(axis)
	}
	return k.At(idx...)
}

// Sum of all weights.
func (k *Kernel) Sum() float64 {
	return floats.Sum(k.Data)
}

// Scale multiplies every weight by f.
func (k *Kernel) Scale(f float64) {
	floats.Scale(f, k.Data)
}

// Symmetric reports whether the kernel is unchanged by reflection through
// its centre, within tol.
func (k *Kernel) Symmetric(tol float64) bool {
	n := len(k.Data)
	for i := 0; i < n/2; i++ {
		if !scalar.EqualWithinAbs(k.Data[i], k.Data[n-1-i], tol) {
			return false
		}
	}
	return true
}

// Matrix returns a 2D kernel as a matrix. The matrix shares storage with k.
func (k *Kernel) Matrix() (*mat.Dense, error) {
	if k.Dims() != 2 {
		return nil, fmt.Errorf("stencil: %d-dimensional kernel is not a matrix", k.Dims())
	}
	return mat.NewDense(k.Shape[0], k.Shape[1], k.Data), nil
}

// Apply evaluates the stencil against a function of the offset from the
// centre, returning sum(w(off) * f(off)).
func (k *Kernel) Apply(f func(off []int) float64) float64 {
	var total float64
	k.each(func(i int, idx []int) {
		if k.Data[i] == 0 {
			return
		}
		off := make([]int, len(idx))
		for axis, v := range idx {
			off[axis] = v - k.Radius(axis)
		}
		total += k.Data[i] * f(off)
	})
	return total
}

// each visits every element with its flat index and its N-D index.
func (k *Kernel) each(fn func(i int, idx []int)) {
	idx := make([]int, k.Dims())
	for i := range k.Data {
		fn(i, idx)
		for axis := len(idx) - 1; axis >= 0; axis-- {
			idx[axis]++
			if idx[axis] < k.Shape[axis] {
				break
			}
			idx[axis] = 0
		}
	}
}

// Convolve returns the full convolution of a and b. Both must have the same
// number of axes.
func Convolve(a, b *Kernel) (*Kernel, error) {
	if a.Dims() != b.Dims() {
		return nil, fmt.Errorf("stencil: cannot convolve %d and %d dimensional kernels", a.Dims(), b.Dims())
	}

	shape := make([]int, a.Dims())
	for axis := range shape {
		shape[axis] = a.Shape[axis] + b.Shape[axis] - 1
	}
	out := NewKernel(shape...)

	sum := make([]int, a.Dims())
	a.each(func(i int, ai []int) {
		if a.Data[i] == 0 {
			return
		}
		b.each(func(j int, bj []int) {
			for axis := range sum {
				sum[axis] = ai[axis] + bj[axis]
			}
			out.Data[out.index(sum)] += a.Data[i] * b.Data[j]
		})
	})
	return out, nil
}

// Power returns k convolved with itself n times over (n >= 1).
func Power(k *Kernel, n int) (*Kernel, error) {
	if n < 1 {
		return nil, fmt.Errorf("stencil: power %d must be at least 1", n)
	}

	out := &Kernel{Shape: append([]int(nil), k.Shape...), Data: append([]float64(nil), k.Data...)}
	for i := 1; i < n; i++ {
		var err error
		if out, err = Convolve(out, k); err != nil {
			return nil, err
		}
	}
	return out, nil
}
