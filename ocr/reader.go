package ocr

import "image"

// TextReader reads text from an image. The engine implementation wraps
// Tesseract; tests substitute fakes.
type TextReader interface {
	// ReadText recognizes free-form text in the image.
	ReadText(img image.Image) (string, error)

	// ReadDigits recognizes digits only, for re-reading glyphs the
	// general pass missed.
	ReadDigits(img image.Image) (string, error)
}
