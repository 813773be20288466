//go:build ocr

// Package ocr reads text from scanned form cells. It wraps the Tesseract
// OCR engine via gosseract and layers a digit-recovery pass on top that
// rescues faint "0" glyphs Tesseract drops.
//
// Tesseract must be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

const digitWhitelist = "0123456789"

// Engine wraps Tesseract for text recognition. It is not safe for
// concurrent use; create one Engine per worker.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a Tesseract-backed engine. The engine should be
// closed when no longer needed to release resources.
func NewEngine() (*Engine, error) {
	return &Engine{client: gosseract.NewClient()}, nil
}

// Close releases Tesseract resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// SetLanguage sets the recognition language(s). Multiple languages can
// be specified as a "+" separated string (e.g., "deu+eng").
func (e *Engine) SetLanguage(lang string) error {
	return e.client.SetLanguage(lang)
}

// ReadText recognizes free-form text in the image.
func (e *Engine) ReadText(img image.Image) (string, error) {
	if err := e.client.SetWhitelist(""); err != nil {
		return "", fmt.Errorf("failed to clear whitelist: %w", err)
	}
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("failed to set segmentation mode: %w", err)
	}
	return e.recognize(img)
}

// ReadDigits recognizes digits only, treating the image as a single
// character. Used by the digit-recovery pass on isolated glyphs.
func (e *Engine) ReadDigits(img image.Image) (string, error) {
	if err := e.client.SetWhitelist(digitWhitelist); err != nil {
		return "", fmt.Errorf("failed to set digit whitelist: %w", err)
	}
	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		return "", fmt.Errorf("failed to set segmentation mode: %w", err)
	}
	return e.recognize(img)
}

func (e *Engine) recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
