// Package filter implements the per-image adjustments applied before
// compositing: Gaussian blur and 4x5 colour matrices (hue rotation and
// opacity).
//
// Filters read and write straight-alpha *image.NRGBA buffers and fan rows
// or columns out over a parallel.Pool. Every line is processed
// independently, so results do not depend on the worker count.
//
// Blur switches from an exact sampled Gaussian to three successive box
// passes once sigma exceeds BoxThreshold. The box cascade costs O(1) per
// pixel regardless of sigma, which keeps photographic radii (sigma in the
// hundreds) tractable.
package filter
