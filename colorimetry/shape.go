package colorimetry

import (
	"fmt"
	"math"
)

// SpectralShape describes a regular wavelength sampling in nanometers.
// The sampled wavelengths are Start, Start+Interval, ..., End inclusive.
type SpectralShape struct {
	Start    float64
	End      float64
	Interval float64
}

// Validate reports whether the shape describes a usable sampling. The span
// must be a whole number of intervals, up to a small rounding tolerance.
func (s SpectralShape) Validate() error {
	if s.End <= s.Start {
		return fmt.Errorf("spectral shape end %g must be greater than start %g", s.End, s.Start)
	}
	if s.Interval <= 0 {
		return fmt.Errorf("spectral shape interval %g must be positive", s.Interval)
	}
	steps := (s.End - s.Start) / s.Interval
	if math.Abs(steps-math.Round(steps)) > 1e-9*steps {
		return fmt.Errorf("spectral shape span %g is not divisible by interval %g", s.End-s.Start, s.Interval)
	}
	return nil
}

// Len returns the number of sampled wavelengths.
func (s SpectralShape) Len() int {
	return int(math.Round((s.End-s.Start)/s.Interval)) + 1
}

// Span returns End - Start in nanometers.
func (s SpectralShape) Span() float64 {
	return s.End - s.Start
}

// Wavelengths returns the sampled wavelengths in increasing order.
func (s SpectralShape) Wavelengths() []float64 {
	n := s.Len()
	wl := make([]float64, n)
	for i := range wl {
		wl[i] = s.Start + float64(i)*s.Interval
	}
	wl[n-1] = s.End
	return wl
}

func (s SpectralShape) String() string {
	return fmt.Sprintf("(%g, %g, %g)", s.Start, s.End, s.Interval)
}
