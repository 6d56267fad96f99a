package spectral

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/spectralkit/spectral/colorimetry"
)

// fitContext holds every target-independent quantity of a fit: the aligned
// observer/illuminant pair, the illuminant whitepoint, the normalised
// wavelength axis and the integration constant. It is built once per fit (or
// batch of fits) and read-only afterwards, so concurrent fits may share it.
type fitContext struct {
	cmfs       *colorimetry.CMFS
	illuminant *colorimetry.SpectralDistribution
	illumXYZ   colorimetry.XYZ // whitepoint, Y = 1 scale
	white      colorimetry.XY
	shape      colorimetry.SpectralShape

	wv []float64 // wavelength axis normalised to [0, 1]
	k  float64   // 100 / (Σ ȳ·I · Δλ)
}

func newFitContext(opts *Options) (*fitContext, error) {
	cmfs := opts.observer()
	illuminant := opts.illuminant()
	if illuminant.Shape() != cmfs.Shape() {
		slog.Warn("aligning illuminant to observer shape",
			"illuminant", illuminant.Name, "observer", cmfs.Name, "shape", cmfs.Shape())
		aligned, err := illuminant.Align(cmfs.Shape())
		if err != nil {
			return nil, err
		}
		illuminant = aligned
	}
	illumXYZ, err := colorimetry.IlluminantXYZ(illuminant, cmfs)
	if err != nil {
		return nil, err
	}
	n := cmfs.Len()
	wv := make([]float64, n)
	for i := range wv {
		wv[i] = float64(i) / float64(n-1)
	}
	dw := cmfs.Shape().Interval
	return &fitContext{
		cmfs:       cmfs,
		illuminant: illuminant,
		illumXYZ:   illumXYZ,
		white:      colorimetry.XYZToxy(illumXYZ),
		shape:      cmfs.Shape(),
		wv:         wv,
		k:          100 / (floats.Dot(cmfs.YBar(), illuminant.Values()) * dw),
	}, nil
}

// evaluation carries the intermediate quantities of one error function call,
// for diagnostics and correctness tests.
type evaluation struct {
	Error       float64
	Grad        [3]float64
	Reflectance []float64
	XYZ         colorimetry.XYZ
	Lab         colorimetry.Lab
}

// errorFunction computes the CIE (1976) colour difference between the target
// and the colour of the model spectrum for the given normalised-domain
// coefficients, together with its analytic gradient.
func (ctx *fitContext) errorFunction(c nondimCoefficients, target colorimetry.Lab) (float64, [3]float64) {
	ev := ctx.evaluate(c, target)
	return ev.Error, ev.Grad
}

func (ctx *fitContext) evaluate(c nondimCoefficients, target colorimetry.Lab) evaluation {
	n := len(ctx.wv)
	illum := ctx.illuminant.Values()
	dw := ctx.shape.Interval

	// Model and its closed-form derivatives on the normalised axis.
	// dR/dU = 1/(2·t1) − U²/(2·t1³) with t1 = sqrt(1+U²), then the chain rule
	// brings in wv², wv and 1 for c0, c1, c2.
	r := make([]float64, n)
	// Illuminant-weighted reflectance and dR/dc, the latter as three stacked
	// rows of length n (one per coefficient).
	e := make([]float64, n)
	de := make([]float64, 3*n)
	for i, t := range ctx.wv {
		u := c[0]*t*t + c[1]*t + c[2]
		t1 := math.Sqrt(1 + u*u)
		r[i] = 0.5 + u/(2*t1)
		t2 := 1/(2*t1) - u*u/(2*t1*t1*t1)
		r2 := illum[i] * t2
		e[i] = illum[i] * r[i]
		de[i] = t * t * r2
		de[n+i] = t * r2
		de[2*n+i] = r2
	}

	var xyz colorimetry.XYZ
	var dXYZ [3][3]float64
	for i := range 3 {
		bar := ctx.cmfs.Channel(i)
		xyz[i] = ctx.k * floats.Dot(e, bar) * dw
		for j := range 3 {
			dXYZ[i][j] = ctx.k * floats.Dot(de[j*n:(j+1)*n], bar) * dw
		}
	}

	// Cube-root-only lightness transform: the CIE 1976 linear segment near
	// black is deliberately omitted here, matching the transform the gradient
	// is derived from.
	var f [3]float64
	var df [3][3]float64
	for i := range 3 {
		wn := 100 * ctx.illumXYZ[i]
		f[i] = math.Cbrt(xyz[i] / wn)
		cb := math.Cbrt(xyz[i])
		denom := 3 * math.Cbrt(wn) * cb * cb
		for j := range 3 {
			df[i][j] = dXYZ[i][j] / denom
		}
	}

	lab := colorimetry.Lab{
		116*f[1] - 16,
		500 * (f[0] - f[1]),
		200 * (f[1] - f[2]),
	}
	var dLab [3][3]float64
	for j := range 3 {
		dLab[0][j] = 116 * df[1][j]
		dLab[1][j] = 500 * (df[0][j] - df[1][j])
		dLab[2][j] = 200 * (df[1][j] - df[2][j])
	}

	ev := evaluation{Reflectance: r, XYZ: xyz, Lab: lab}
	ev.Error = colorimetry.DeltaE76(lab, target)
	if ev.Error == 0 {
		// The Euclidean-norm gradient is undefined at an exact match.
		return ev
	}
	for i := range 3 {
		var sum float64
		for j := range 3 {
			sum += dLab[j][i] * (lab[j] - target[j])
		}
		ev.Grad[i] = sum / ev.Error
	}
	return ev
}
