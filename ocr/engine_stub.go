//go:build !ocr

// Package ocr reads text from scanned form cells. It wraps the Tesseract
// OCR engine via gosseract and layers a digit-recovery pass on top that
// rescues faint "0" glyphs Tesseract drops.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. Engine constructors and methods return ErrOCRNotEnabled. To
// enable recognition, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when engine functions are called but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine is a stub that returns errors for all operations.
type Engine struct{}

// NewEngine returns an error indicating OCR support is not enabled.
func NewEngine() (*Engine, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub engine. It is safe to call on a nil
// engine.
func (e *Engine) Close() error {
	return nil
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (e *Engine) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// ReadText returns an error indicating OCR support is not enabled.
func (e *Engine) ReadText(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

// ReadDigits returns an error indicating OCR support is not enabled.
func (e *Engine) ReadDigits(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}
