package spectral

import (
	"math"

	"github.com/spectralkit/spectral/colorimetry"
)

// Coefficients parameterises a reflectance spectrum as
//
//	U(λ) = c0·λ² + c1·λ + c2
//	R(λ) = 1/2 + U / (2·sqrt(1 + U²))
//
// with λ in nanometers. The sigmoid saturation keeps R strictly inside (0, 1)
// for any finite coefficients, which is what makes the model safe to drive
// from an unconstrained minimiser. The zero value describes a uniform 50%
// grey reflector.
type Coefficients [3]float64

// Reflectance evaluates the model at a single wavelength in nanometers.
func (c Coefficients) Reflectance(wl float64) float64 {
	u := c[0]*wl*wl + c[1]*wl + c[2]
	return 0.5 + u/(2*math.Sqrt(1+u*u))
}

// SD evaluates the model over every wavelength of the shape.
func (c Coefficients) SD(shape colorimetry.SpectralShape, name string) (*colorimetry.SpectralDistribution, error) {
	wl := shape.Wavelengths()
	values := make([]float64, len(wl))
	for i, w := range wl {
		values[i] = c.Reflectance(w)
	}
	return colorimetry.NewSD(name, shape, values)
}

// nondimCoefficients are model coefficients valid only against a wavelength
// domain normalised to [0, 1]. Optimisation always runs in this domain for
// numerical conditioning; the distinct type keeps the two representations
// from being mixed up.
type nondimCoefficients [3]float64

// dimensionalise rescales the coefficients from the normalised [0, 1] domain
// onto the true nanometer domain of the shape. It is the exact inverse of
// nondimensionalise.
func (c nondimCoefficients) dimensionalise(shape colorimetry.SpectralShape) Coefficients {
	span := shape.Span()
	start := shape.Start
	return Coefficients{
		c[0] / (span * span),
		c[1]/span - 2*c[0]*start/(span*span),
		c[0]*start*start/(span*span) - c[1]*start/span + c[2],
	}
}

// nondimensionalise maps dimensional coefficients onto the normalised [0, 1]
// wavelength domain of the shape, substituting λ = start + span·t.
func (c Coefficients) nondimensionalise(shape colorimetry.SpectralShape) nondimCoefficients {
	span := shape.Span()
	start := shape.Start
	return nondimCoefficients{
		c[0] * span * span,
		2*c[0]*start*span + c[1]*span,
		c[0]*start*start + c[1]*start + c[2],
	}
}
