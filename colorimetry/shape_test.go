package colorimetry

import (
	"math"
	"testing"
)

func TestShapeValidate(t *testing.T) {
	cases := []struct {
		name  string
		shape SpectralShape
		ok    bool
	}{
		{"default dataset shape", SpectralShape{360, 780, 5}, true},
		{"single interval", SpectralShape{400, 410, 10}, true},
		{"end before start", SpectralShape{780, 360, 5}, false},
		{"zero interval", SpectralShape{360, 780, 0}, false},
		{"negative interval", SpectralShape{360, 780, -5}, false},
		{"span not divisible", SpectralShape{360, 783, 5}, false},
		{"divisible up to rounding", SpectralShape{0, 0.3, 0.1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.shape.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error for %v: %v", tc.shape, err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error for %v", tc.shape)
			}
		})
	}
}

func TestShapeWavelengths(t *testing.T) {
	s := SpectralShape{360, 780, 5}
	wl := s.Wavelengths()
	if len(wl) != 85 || s.Len() != 85 {
		t.Fatalf("expected 85 wavelengths, got %d", len(wl))
	}
	if wl[0] != 360 || wl[1] != 365 || wl[84] != 780 {
		t.Fatalf("unexpected wavelengths: first=%g second=%g last=%g", wl[0], wl[1], wl[84])
	}
	// The last sample must be exactly End even when the interval does not
	// accumulate cleanly in floating point.
	s = SpectralShape{0, 0.3, 0.1}
	wl = s.Wavelengths()
	if wl[len(wl)-1] != 0.3 {
		t.Fatalf("last wavelength %g != 0.3", wl[len(wl)-1])
	}
}

func TestShapeSpan(t *testing.T) {
	if got := (SpectralShape{360, 780, 5}).Span(); math.Abs(got-420) > 0 {
		t.Fatalf("span = %g, want 420", got)
	}
}
