// Package imaging provides the raster operations the structural detector
// is built on: grayscale conversion, binary and adaptive thresholding,
// morphological opening with rectangular kernels, connected-component
// contour extraction, edge detection with horizontal segment tracing,
// and resolution normalization.
//
// All operations are pure transforms on stdlib image types. Foreground
// masks are represented by [Bitmap], where true marks ink (content)
// pixels after inverted thresholding.
package imaging
