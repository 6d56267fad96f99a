package spectral

import (
	"fmt"

	"github.com/spectralkit/spectral/colorimetry"
)

// DefaultShape is the wavelength sampling used by the recovery driver and the
// lookup table path: 360 nm to 780 nm at 5 nm steps.
var DefaultShape = colorimetry.SpectralShape{Start: 360, End: 780, Interval: 5}

// XYZToSD recovers a reflectance spectrum reproducing the target tristimulus
// values. The spectrum is sampled over the observer's shape. The returned
// FitResult carries the residual colour difference and convergence status.
func XYZToSD(target colorimetry.XYZ, opts *Options) (*colorimetry.SpectralDistribution, FitResult, error) {
	ctx, err := newFitContext(opts)
	if err != nil {
		return nil, FitResult{}, err
	}
	res := ctx.fit(target, opts.start())
	name := fmt.Sprintf("recovered from XYZ (%.6g, %.6g, %.6g)", target[0], target[1], target[2])
	sd, err := res.Coefficients.SD(ctx.shape, name)
	if err != nil {
		return nil, FitResult{}, err
	}
	return sd, res, nil
}
