/*
Package spectral recovers physically plausible reflectance spectra that
reproduce given tristimulus colours.

Two paths produce the same parametric spectrum: FitCoefficients/XYZToSD run a
quasi-Newton minimisation of the CIE 1976 colour difference with an analytic
gradient, while Table performs fast multilinear interpolation over a
precomputed coefficient grid loaded from a binary resource.

All operations are pure and CPU bound. Fits are independent and stateless, so
callers may run many concurrently; FitCoefficientsAll does exactly that.
*/
package spectral
