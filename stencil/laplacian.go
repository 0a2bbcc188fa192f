package stencil

import "fmt"

// Laplacian returns the second-order central difference Laplacian for 1, 2
// or 3 dimensions: 3, 5 or 7 points on a unit grid.
func Laplacian(dims int) (*Kernel, error) {
	if dims < 1 || dims > 3 {
		return nil, fmt.Errorf("stencil: unsupported dimension %d", dims)
	}

	shape := make([]int, dims)
	for i := range shape {
		shape[i] = 3
	}
	k := NewKernel(shape...)

	centre := make([]int, dims)
	for i := range centre {
		centre[i] = 1
	}
	k.Set(float64(-2*dims), centre...)
	for axis := 0; axis < dims; axis++ {
		for _, d := range []int{-1, 1} {
			idx := append([]int(nil), centre...)
			idx[axis] += d
			k.Set(1, idx...)
		}
	}
	return k, nil
}

// LaplacianPower returns the Laplacian applied n times: n=2 is the
// bi-Laplacian and n=3 the tri-Laplacian.
func LaplacianPower(dims, n int) (*Kernel, error) {
	l, err := Laplacian(dims)
	if err != nil {
		return nil, err
	}
	return Power(l, n)
}

// BiLaplacian is LaplacianPower(dims, 2).
func BiLaplacian(dims int) (*Kernel, error) {
	return LaplacianPower(dims, 2)
}

// TriLaplacian is LaplacianPower(dims, 3).
func TriLaplacian(dims int) (*Kernel, error) {
	return LaplacianPower(dims, 3)
}
