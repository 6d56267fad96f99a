package colorimetry

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// SpectralDistribution maps each wavelength of a SpectralShape to a value,
// typically reflectance in [0, 1] or relative spectral power. It is never
// mutated after construction; Align returns a fresh distribution.
type SpectralDistribution struct {
	Name string

	shape  SpectralShape
	values []float64
}

// NewSD builds a distribution over the given shape. values must hold exactly
// one sample per wavelength of the shape.
func NewSD(name string, shape SpectralShape, values []float64) (*SpectralDistribution, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(values) != shape.Len() {
		return nil, fmt.Errorf("distribution %q has %d values for %d wavelengths", name, len(values), shape.Len())
	}
	return &SpectralDistribution{Name: name, shape: shape, values: values}, nil
}

// Shape returns the sampling descriptor of the distribution.
func (sd *SpectralDistribution) Shape() SpectralShape { return sd.shape }

// Len returns the number of samples.
func (sd *SpectralDistribution) Len() int { return len(sd.values) }

// Values returns the sampled values ordered by wavelength. The slice is owned
// by the distribution and must not be modified.
func (sd *SpectralDistribution) Values() []float64 { return sd.values }

// Wavelengths returns the sampled wavelengths in nanometers.
func (sd *SpectralDistribution) Wavelengths() []float64 { return sd.shape.Wavelengths() }

// Align resamples the distribution onto the given shape by piecewise linear
// interpolation. Wavelengths outside the original domain take the value of
// the nearest endpoint.
func (sd *SpectralDistribution) Align(shape SpectralShape) (*SpectralDistribution, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape == sd.shape {
		return sd, nil
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(sd.Wavelengths(), sd.values); err != nil {
		return nil, fmt.Errorf("aligning %q to %v: %w", sd.Name, shape, err)
	}
	values := make([]float64, shape.Len())
	for i, wl := range shape.Wavelengths() {
		// Clamp for constant extrapolation beyond the tabulated range.
		values[i] = pl.Predict(min(max(wl, sd.shape.Start), sd.shape.End))
	}
	return &SpectralDistribution{Name: sd.Name, shape: shape, values: values}, nil
}
