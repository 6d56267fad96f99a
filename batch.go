package spectral

import (
	"github.com/kovidgoyal/go-parallel"

	"github.com/spectralkit/spectral/colorimetry"
)

// FitCoefficientsAll fits every target concurrently. Each fit is independent
// and the shared fit context is read-only, so the targets are simply split
// across workers. Results are in target order.
func FitCoefficientsAll(targets []colorimetry.XYZ, opts *Options) ([]FitResult, error) {
	ctx, err := newFitContext(opts)
	if err != nil {
		return nil, err
	}
	start := opts.start()
	results := make([]FitResult, len(targets))
	err = parallel.Run_in_parallel_over_range(0, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			results[i] = ctx.fit(targets[i], start)
		}
	}, 0, len(targets))
	if err != nil {
		return nil, err
	}
	return results, nil
}
