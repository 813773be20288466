// Package render is the PDF boundary of the pipeline: it pulls the
// scanned page images and the embedded text layer out of a PDF so the
// structural analysis can work on plain images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	// Scanned pages arrive as PNG, JPEG or TIFF streams.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// ExtractPageImages extracts the embedded page images of a PDF, in
// page order. Scanned reporting forms embed one full-page scan per
// page, so the result maps one image to one page.
func ExtractPageImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "cellula-pages")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "cellula-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	conf := pdfcpumodel.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	// pdfcpu names extracted files by page and object number, so a
	// lexical sort reproduces page order.
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var images []image.Image
	for _, name := range names {
		img, err := decodeFile(filepath.Join(tempDir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to decode page image %s: %w", name, err)
		}
		images = append(images, img)
	}
	return images, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// ExtractText returns the embedded text layer of a PDF, one line per
// text row. Digitally produced forms carry their values here and skip
// OCR entirely; scanned forms return an empty string.
func ExtractText(pdfData []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var b strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
