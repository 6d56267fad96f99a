package colorimetry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// XYZ holds CIE XYZ tristimulus values on the colourimetric scale where the
// perfect reflecting diffuser has Y = 100.
type XYZ [3]float64

// Lab holds a CIE L*a*b* triplet.
type Lab [3]float64

// XY holds CIE xy chromaticity coordinates.
type XY struct {
	X, Y float64
}

// SDToXYZ integrates a reflectance distribution against the observer channels
// under the given illuminant:
//
//	XYZ_i = k * Σ R(λ)·I(λ)·bar_i(λ) · Δλ,  k = 100 / (Σ ȳ(λ)·I(λ) · Δλ)
//
// All three inputs must share the same shape.
func SDToXYZ(sd *SpectralDistribution, cmfs *CMFS, illuminant *SpectralDistribution) (XYZ, error) {
	if sd.Shape() != cmfs.Shape() || illuminant.Shape() != cmfs.Shape() {
		return XYZ{}, fmt.Errorf("shape mismatch: distribution %v, observer %v, illuminant %v",
			sd.Shape(), cmfs.Shape(), illuminant.Shape())
	}
	dw := cmfs.Shape().Interval
	k := 100 / (floats.Dot(cmfs.YBar(), illuminant.Values()) * dw)

	weighted := make([]float64, sd.Len())
	floats.MulTo(weighted, sd.Values(), illuminant.Values())

	var xyz XYZ
	for i := range 3 {
		xyz[i] = k * floats.Dot(weighted, cmfs.Channel(i)) * dw
	}
	return xyz, nil
}

// IlluminantXYZ derives the whitepoint of an illuminant under the given
// observer, scaled so that Y = 1.
func IlluminantXYZ(illuminant *SpectralDistribution, cmfs *CMFS) (XYZ, error) {
	ones := make([]float64, cmfs.Len())
	for i := range ones {
		ones[i] = 1
	}
	unit := &SpectralDistribution{Name: "unit reflector", shape: cmfs.Shape(), values: ones}
	xyz, err := SDToXYZ(unit, cmfs, illuminant)
	if err != nil {
		return XYZ{}, err
	}
	return XYZ{xyz[0] / 100, xyz[1] / 100, xyz[2] / 100}, nil
}

// XYZToxy projects tristimulus values onto the chromaticity plane.
func XYZToxy(xyz XYZ) XY {
	sum := xyz[0] + xyz[1] + xyz[2]
	if sum == 0 {
		return XY{}
	}
	return XY{X: xyz[0] / sum, Y: xyz[1] / sum}
}

// XYToXYZ lifts chromaticity coordinates to tristimulus values with Y = 1.
func XYToXYZ(xy XY) XYZ {
	if xy.Y == 0 {
		return XYZ{}
	}
	return XYZ{xy.X / xy.Y, 1, (1 - xy.X - xy.Y) / xy.Y}
}

// labF is the CIE 1976 lightness function, including the linear segment
// below (6/29)^3.
func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

// XYZToLab converts tristimulus values (Y of white = 100) to CIE L*a*b*
// relative to the whitepoint at the given chromaticity.
func XYZToLab(xyz XYZ, white XY) Lab {
	wp := XYToXYZ(white)
	fx := labF(xyz[0] / (100 * wp[0]))
	fy := labF(xyz[1] / (100 * wp[1]))
	fz := labF(xyz[2] / (100 * wp[2]))
	return Lab{
		116*fy - 16,
		500 * (fx - fy),
		200 * (fy - fz),
	}
}

// DeltaE76 returns the CIE 1976 colour difference between two Lab triplets.
func DeltaE76(a, b Lab) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}
