package stencil

import "fmt"

// Stencil is an integer kernel together with the divisor that turns it into
// a difference operator on a grid of spacing h: weights / (Divisor * h^Order).
type Stencil struct {
	Kernel  *Kernel
	Divisor float64
	Order   int
}

// Weights returns the kernel divided through by the divisor, for h = 1.
func (s *Stencil) Weights() *Kernel {
	k := &Kernel{Shape: append([]int(nil), s.Kernel.Shape...), Data: append([]float64(nil), s.Kernel.Data...)}
	k.Scale(1 / s.Divisor)
	return k
}

// Apply evaluates the operator on a unit grid.
func (s *Stencil) Apply(f func(off []int) float64) float64 {
	return s.Kernel.Apply(f) / s.Divisor
}

// Then returns the operator s followed by t, the convolution of the two.
func (s *Stencil) Then(t *Stencil) (*Stencil, error) {
	k, err := Convolve(s.Kernel, t.Kernel)
	if err != nil {
		return nil, err
	}
	return &Stencil{Kernel: k, Divisor: s.Divisor * t.Divisor, Order: s.Order + t.Order}, nil
}

func fromRows(divisor float64, order int, shape []int, data ...float64) *Stencil {
	k := NewKernel(shape...)
	copy(k.Data, data)
	return &Stencil{Kernel: k, Divisor: divisor, Order: order}
}

// byDistance fills a 3x3x3 kernel from the weight for each squared distance
// from the centre: 0, face, edge and corner.
func byDistance(w [4]float64) *Kernel {
	k := NewKernel(3, 3, 3)
	k.each(func(i int, idx []int) {
		d := 0
		for _, v := range idx {
			if v != 1 {
				d++
			}
		}
		k.Data[i] = w[d]
	})
	return k
}

// IsotropicLaplacian returns the Laplacian whose leading error term is
// rotationally invariant: 3 points in 1D, 9 points over 6h^2 in 2D and 27
// points over 30h^2 in 3D.
func IsotropicLaplacian(dims int) (*Stencil, error) {
	switch dims {
	case 1:
		return fromRows(1, 2, []int{3}, 1, -2, 1), nil
	case 2:
		return fromRows(6, 2, []int{3, 3},
			1, 4, 1,
			4, -20, 4,
			1, 4, 1), nil
	case 3:
		return &Stencil{Kernel: byDistance([4]float64{-128, 14, 3, 1}), Divisor: 30, Order: 2}, nil
	}
	return nil, fmt.Errorf("stencil: unsupported dimension %d", dims)
}

// IsotropicBiLaplacian returns the isotropic bi-Laplacian: 13 points over
// 3h^4 in 2D, and the 19 point Laplacian (over 6h^2) applied twice in 3D,
// over 36h^4.
func IsotropicBiLaplacian(dims int) (*Stencil, error) {
	switch dims {
	case 1:
		return fromRows(1, 4, []int{5}, 1, -4, 6, -4, 1), nil
	case 2:
		return fromRows(3, 4, []int{5, 5},
			0, 1, 1, 1, 0,
			1, -2, -10, -2, 1,
			1, -10, 36, -10, 1,
			1, -2, -10, -2, 1,
			0, 1, 1, 1, 0), nil
	case 3:
		l := &Stencil{Kernel: byDistance([4]float64{-24, 2, 1, 0}), Divisor: 6, Order: 2}
		return l.Then(l)
	}
	return nil, fmt.Errorf("stencil: unsupported dimension %d", dims)
}

// IsotropicTriLaplacian is the isotropic Laplacian convolved with the
// isotropic bi-Laplacian: 18h^6 in 2D and 1080h^6 in 3D.
func IsotropicTriLaplacian(dims int) (*Stencil, error) {
	l, err := IsotropicLaplacian(dims)
	if err != nil {
		return nil, err
	}
	b, err := IsotropicBiLaplacian(dims)
	if err != nil {
		return nil, err
	}
	return l.Then(b)
}

// IsotropicPower returns the isotropic Laplacian, bi-Laplacian or
// tri-Laplacian for n = 1, 2 or 3.
func IsotropicPower(dims, n int) (*Stencil, error) {
	switch n {
	case 1:
		return IsotropicLaplacian(dims)
	case 2:
		return IsotropicBiLaplacian(dims)
	case 3:
		return IsotropicTriLaplacian(dims)
	}
	return nil, fmt.Errorf("stencil: no isotropic Laplacian power %d", n)
}
