package spectral

import (
	"github.com/spectralkit/spectral/colorimetry"
)

// Options configures a fit. The zero value selects the CIE 1931 2 degree
// standard observer under illuminant D65, starting the minimiser at the grey
// baseline.
type Options struct {
	// CMFS are the observer colour matching functions. Defaults to the
	// embedded CIE 1931 2 degree table.
	CMFS *colorimetry.CMFS

	// Illuminant is the reference light source. Defaults to D65. If its
	// shape differs from the observer's it is realigned, with a diagnostic.
	Illuminant *colorimetry.SpectralDistribution

	// Start is the minimiser starting point, expressed in the normalised
	// [0, 1] wavelength domain. The zero value is the uniform grey reflector.
	Start [3]float64
}

func (o *Options) observer() *colorimetry.CMFS {
	if o != nil && o.CMFS != nil {
		return o.CMFS
	}
	return colorimetry.CIE1931Observer()
}

func (o *Options) illuminant() *colorimetry.SpectralDistribution {
	if o != nil && o.Illuminant != nil {
		return o.Illuminant
	}
	return colorimetry.D65()
}

func (o *Options) start() [3]float64 {
	if o != nil {
		return o.Start
	}
	return [3]float64{}
}

// FitResult is the outcome of a coefficient fit.
type FitResult struct {
	// Coefficients are dimensional, valid against the true nanometer domain.
	Coefficients Coefficients

	// Error is the residual CIE 1976 colour difference between the target
	// and the colour of the fitted spectrum.
	Error float64

	// Converged reports whether the minimiser met its convergence criteria.
	// A false value is not fatal: Coefficients still holds the best point
	// found, and Error tells how good it is.
	Converged bool
}

// FitCoefficients recovers model coefficients whose spectrum reproduces the
// target tristimulus values under the configured observer and illuminant.
func FitCoefficients(target colorimetry.XYZ, opts *Options) (FitResult, error) {
	ctx, err := newFitContext(opts)
	if err != nil {
		return FitResult{}, err
	}
	return ctx.fit(target, opts.start()), nil
}

func (ctx *fitContext) fit(target colorimetry.XYZ, start [3]float64) FitResult {
	targetLab := colorimetry.XYZToLab(target, ctx.white)
	x, f, converged := minimize(func(p [3]float64) (float64, [3]float64) {
		return ctx.errorFunction(nondimCoefficients(p), targetLab)
	}, start)
	return FitResult{
		Coefficients: nondimCoefficients(x).dimensionalise(ctx.shape),
		Error:        f,
		Converged:    converged,
	}
}
