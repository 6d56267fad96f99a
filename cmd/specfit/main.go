package main

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/spectralkit/spectral"
	"github.com/spectralkit/spectral/colorimetry"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: specfit [table-file] '#rrggbb'")
	os.Exit(1)
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	if len(os.Args) < 2 || len(os.Args) > 3 {
		usage()
	}

	hex := os.Args[len(os.Args)-1]
	c, err := colorful.Hex(hex)
	if err != nil {
		return
	}

	var sd *colorimetry.SpectralDistribution
	if len(os.Args) == 3 {
		var table *spectral.Table
		table, err = spectral.OpenTable(os.Args[1])
		if err != nil {
			return
		}
		r, g, b := c.LinearRgb()
		sd, err = table.RGBToSD(r, g, b, spectral.DefaultShape)
		if err != nil {
			return
		}
	} else {
		x, y, z := c.Xyz()
		var res spectral.FitResult
		sd, res, err = spectral.XYZToSD(colorimetry.XYZ{100 * x, 100 * y, 100 * z}, nil)
		if err != nil {
			return
		}
		fmt.Fprintf(os.Stderr, "residual dE76=%.4f converged=%v\n", res.Error, res.Converged)
	}

	values := sd.Values()
	for i, wl := range sd.Wavelengths() {
		fmt.Printf("%g\t%.6f\n", wl, values[i])
	}
}
