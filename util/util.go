package util

import (
	"math"

	"github.com/fogleman/ease"
)

// GenerateShadingLut builds a rising look-up table that eases from 0 to 1.
func GenerateShadingLut(length int) []float64 {
	if length < 2 {
		return []float64{1}
	}
	increment := 1.0 / float64(length-1)
	lut := make([]float64, length)
	for i := 0; i < length; i++ {
		lut[i] = ease.InOutQuad(float64(i) * increment)
	}
	return lut
}

// Lookup reads the table at t in [0, 1], clamping t to that range. NaN reads
// the first entry.
func Lookup(lut []float64, t float64) float64 {
	if t <= 0 || math.IsNaN(t) {
		return lut[0]
	}
	if t >= 1 {
		return lut[len(lut)-1]
	}
	return lut[int(t*float64(len(lut)-1)+0.5)]
}
