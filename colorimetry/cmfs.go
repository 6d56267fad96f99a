package colorimetry

import "fmt"

// CMFS holds the colour matching functions of a standard observer: three
// per-wavelength sensitivity curves sharing a single shape.
type CMFS struct {
	Name string

	shape   SpectralShape
	x, y, z []float64
}

// NewCMFS builds colour matching functions over the given shape. Each channel
// must hold exactly one sample per wavelength.
func NewCMFS(name string, shape SpectralShape, x, y, z []float64) (*CMFS, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	n := shape.Len()
	if len(x) != n || len(y) != n || len(z) != n {
		return nil, fmt.Errorf("observer %q channel lengths (%d, %d, %d) do not match %d wavelengths",
			name, len(x), len(y), len(z), n)
	}
	return &CMFS{Name: name, shape: shape, x: x, y: y, z: z}, nil
}

// Shape returns the sampling descriptor of the observer.
func (c *CMFS) Shape() SpectralShape { return c.shape }

// Len returns the number of samples per channel.
func (c *CMFS) Len() int { return len(c.y) }

// XBar returns the x-bar channel. The slice is owned by the observer and must
// not be modified. YBar and ZBar behave likewise.
func (c *CMFS) XBar() []float64 { return c.x }
func (c *CMFS) YBar() []float64 { return c.y }
func (c *CMFS) ZBar() []float64 { return c.z }

// Channel returns the i-th channel (0 = x-bar, 1 = y-bar, 2 = z-bar).
func (c *CMFS) Channel(i int) []float64 {
	switch i {
	case 0:
		return c.x
	case 1:
		return c.y
	default:
		return c.z
	}
}
