package stencil

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultTruncate is the number of standard deviations a Gaussian extends to.
const DefaultTruncate = 4.0

// binomialGaussian is the five point integer Gaussian the isotropic kernels
// are built from. It sums to 273.
var binomialGaussian = []float64{17, 66, 107, 66, 17}

// Gaussian1D samples a normalised Gaussian with the given standard deviation
// out to int(truncate*sigma + 0.5) points either side of the centre.
func Gaussian1D(sigma, truncate float64) (*Kernel, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("stencil: sigma %g must be positive", sigma)
	}
	if truncate <= 0 {
		truncate = DefaultTruncate
	}

	radius := int(truncate*sigma + 0.5)
	k := NewKernel(2*radius + 1)
	for i := -radius; i <= radius; i++ {
		x := float64(i)
		k.Data[i+radius] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	k.Scale(1 / floats.Sum(k.Data))
	return k, nil
}

// Gaussian returns an isotropic Gaussian in dims dimensions. It is the outer
// product of the one dimensional kernel with itself, so it sums to 1.
func Gaussian(dims int, sigma, truncate float64) (*Kernel, error) {
	if dims < 1 {
		return nil, fmt.Errorf("stencil: unsupported dimension %d", dims)
	}
	g, err := Gaussian1D(sigma, truncate)
	if err != nil {
		return nil, err
	}
	return outer(g.Data, dims, 1), nil
}

// IntegerGaussian returns the rounded outer product of {17, 66, 107, 66, 17}
// in dims dimensions. Each product is divided by 273^(dims-1) before
// rounding, and the divisor is the sum of the rounded weights.
func IntegerGaussian(dims int) (*Stencil, error) {
	if dims < 1 || dims > 3 {
		return nil, fmt.Errorf("stencil: unsupported dimension %d", dims)
	}
	norm := floats.Sum(binomialGaussian)
	k := outer(binomialGaussian, dims, 1/math.Pow(norm, float64(dims-1)))
	for i, w := range k.Data {
		k.Data[i] = math.Round(w)
	}
	return &Stencil{Kernel: k, Divisor: k.Sum()}, nil
}

// outer returns alpha times the dims-fold outer product of v with itself.
func outer(v []float64, dims int, alpha float64) *Kernel {
	shape := make([]int, dims)
	for i := range shape {
		shape[i] = len(v)
	}
	k := NewKernel(shape...)

	if dims == 2 {
		m, _ := k.Matrix()
		x := mat.NewVecDense(len(v), v)
		m.Outer(alpha, x, x)
		return k
	}

	k.each(func(i int, idx []int) {
		w := alpha
		for _, j := range idx {
			w *= v[j]
		}
		k.Data[i] = w
	})
	return k
}
