package spectral

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/spectralkit/spectral/colorimetry"
)

// Table is a precomputed coefficient grid mapping RGB triplets to model
// coefficients without running the optimiser. It is produced by an offline
// fitting process and only read here. Once loaded a Table is immutable and
// safe for concurrent lookups.
//
// The binary layout is: "SPEC" magic, little-endian int32 resolution N,
// N float32 scale values (strictly increasing, the nonuniform axis for the
// maximum channel value), then 3·N³·3 float32 coefficients in
// [channel][i][j][k][coefficient] order.
type Table struct {
	res    int
	scale  []float64
	coeffs []float64
}

// ErrBadMagic reports that a table file does not start with the "SPEC"
// signature.
var ErrBadMagic = errors.New("bad magic, not a spectrum coefficient table")

const tableMagic = "SPEC"

// Resolutions outside this range are taken as corruption rather than a
// legitimately huge grid; 3·N³·3 float32s at N=1024 is already 48 GiB.
const maxTableResolution = 1024

// OpenTable loads a coefficient table from a file.
func OpenTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading table %q: %w", path, err)
	}
	return t, nil
}

// ReadTable loads a coefficient table from a reader. On any error no table is
// returned, so a partially populated grid can never be observed.
func ReadTable(r io.Reader) (*Table, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic[:]) != tableMagic {
		return nil, ErrBadMagic
	}
	var res int32
	if err := binary.Read(r, binary.LittleEndian, &res); err != nil {
		return nil, fmt.Errorf("reading resolution: %w", err)
	}
	if res < 2 || res > maxTableResolution {
		return nil, fmt.Errorf("implausible table resolution %d", res)
	}
	n := int(res)

	scale32 := make([]float32, n)
	if err := binary.Read(r, binary.LittleEndian, scale32); err != nil {
		return nil, fmt.Errorf("reading scale: %w", err)
	}
	scale := make([]float64, n)
	for i, v := range scale32 {
		scale[i] = float64(v)
		if i > 0 && scale[i] <= scale[i-1] {
			return nil, fmt.Errorf("scale is not strictly increasing at index %d", i)
		}
	}

	coeffs32 := make([]float32, 3*n*n*n*3)
	if err := binary.Read(r, binary.LittleEndian, coeffs32); err != nil {
		return nil, fmt.Errorf("reading coefficients: %w", err)
	}
	coeffs := make([]float64, len(coeffs32))
	for i, v := range coeffs32 {
		coeffs[i] = float64(v)
	}
	return &Table{res: n, scale: scale, coeffs: coeffs}, nil
}

// Resolution returns the number of grid samples per axis.
func (t *Table) Resolution() int { return t.res }

// Coefficients interpolates the grid at the given RGB triplet and returns
// dimensional model coefficients. Queries outside the table domain return
// NaN coefficients rather than extrapolating.
func (t *Table) Coefficients(r, g, b float64) Coefficients {
	// Hue/chroma style decomposition: the cube is selected by the index of
	// the largest channel, the remaining two channels are normalised by it.
	// The epsilon keeps black from dividing by zero.
	vmax, imax := r, 0
	if g > vmax {
		vmax, imax = g, 1
	}
	if b > vmax {
		vmax, imax = b, 2
	}
	rgb := [3]float64{r, g, b}
	v2 := rgb[(imax+2)%3] / (vmax + 1e-10)
	v3 := rgb[(imax+1)%3] / (vmax + 1e-10)

	if vmax < t.scale[0] || vmax > t.scale[t.res-1] ||
		v2 < 0 || v2 > 1 || v3 < 0 || v3 > 1 {
		nan := math.NaN()
		return Coefficients{nan, nan, nan}
	}

	i, wi := t.scaleCell(vmax)
	j, wj := uniformCell(v2, t.res)
	k, wk := uniformCell(v3, t.res)

	// Multilinear blend over the 8 surrounding grid nodes; the channel axis
	// is categorical and needs no blending.
	var out Coefficients
	for corner := range 8 {
		ci, cj, ck := i, j, k
		weight := 1.0
		if corner&4 != 0 {
			ci, weight = ci+1, weight*wi
		} else {
			weight *= 1 - wi
		}
		if corner&2 != 0 {
			cj, weight = cj+1, weight*wj
		} else {
			weight *= 1 - wj
		}
		if corner&1 != 0 {
			ck, weight = ck+1, weight*wk
		} else {
			weight *= 1 - wk
		}
		base := t.nodeOffset(imax, ci, cj, ck)
		for c := range 3 {
			out[c] += weight * t.coeffs[base+c]
		}
	}
	return out
}

// RGBToSD interpolates coefficients for the RGB triplet and evaluates the
// spectral model over the shape.
func (t *Table) RGBToSD(r, g, b float64, shape colorimetry.SpectralShape) (*colorimetry.SpectralDistribution, error) {
	name := fmt.Sprintf("recovered from RGB (%.6g, %.6g, %.6g)", r, g, b)
	return t.Coefficients(r, g, b).SD(shape, name)
}

func (t *Table) nodeOffset(channel, i, j, k int) int {
	return 3 * (((channel*t.res+i)*t.res+j)*t.res + k)
}

// scaleCell locates the cell of the nonuniform scale axis containing v and
// the fractional position of v within it.
func (t *Table) scaleCell(v float64) (int, float64) {
	i := sort.SearchFloat64s(t.scale, v) - 1
	i = max(0, min(i, t.res-2))
	return i, (v - t.scale[i]) / (t.scale[i+1] - t.scale[i])
}

// uniformCell does the same for a [0, 1] axis sampled at n points.
func uniformCell(v float64, n int) (int, float64) {
	pos := v * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return n - 2, 1
	}
	return i, pos - float64(i)
}
