// Package cellula analyzes scanned reporting forms: it normalizes page
// images to a working resolution, detects ruled tables and their cells,
// reads each cell with OCR, extracts the registration identifier and
// the numeric reporting fields, and reconciles them against a reference
// record.
//
// Basic usage:
//
//	engine, err := ocr.NewEngine()
//	if err != nil {
//	    // handle error
//	}
//	defer engine.Close()
//
//	p := cellula.New(engine)
//	page, err := p.ProcessPage(img)
//	if err != nil {
//	    // handle error
//	}
//	values := p.ExtractValues(page.Attributes, page.Identifier, page.HasIdentifier)
//	report, err := p.Verify(values, lookup)
package cellula

import (
	"errors"
	"fmt"
	"image"

	"github.com/mhenke/cellula/extract"
	"github.com/mhenke/cellula/imaging"
	"github.com/mhenke/cellula/model"
	"github.com/mhenke/cellula/ocr"
	"github.com/mhenke/cellula/reconcile"
	"github.com/mhenke/cellula/render"
)

var (
	// ErrNoIdentifier is returned by Verify when no registration
	// identifier was extracted from the document.
	ErrNoIdentifier = errors.New("no registration identifier extracted")

	// ErrUnknownIdentifier is returned by Verify when the extracted
	// identifier has no reference record.
	ErrUnknownIdentifier = errors.New("no reference record for identifier")
)

// Table is one detected table with the OCR'd text of its cells.
type Table struct {
	Region model.Region
	Rows   [][]string
}

// PageResult holds everything extracted from a single page.
type PageResult struct {
	Attributes model.Attributes
	Tables     []Table

	Identifier    int
	HasIdentifier bool

	// Signature and date evidence, checked only on pages without
	// tables (approval and cover pages).
	HasSignature bool
	HasDate      bool

	// CellErrors counts cells whose OCR failed. A failed cell reads as
	// empty rather than aborting the page.
	CellErrors int
}

// DocumentResult accumulates the page results of a whole document.
// Attributes merge in page order; the first identifier found wins.
type DocumentResult struct {
	Attributes model.Attributes
	Pages      []*PageResult

	Identifier    int
	HasIdentifier bool
}

// ProcessPage runs the structural analysis on one page image: detect
// tables, split them into rows and cells, read each cell, and fold the
// rows into the attribute set. Pages without tables are checked for
// signature and date marks instead.
func (p *Pipeline) ProcessPage(img image.Image) (*PageResult, error) {
	if img == nil {
		return nil, errors.New("nil page image")
	}
	normalized := imaging.NormalizeResolution(img, p.targetDPI)
	gray := imaging.ToGray(normalized)

	result := &PageResult{Attributes: make(model.Attributes)}

	tables := p.detector.DetectTables(gray)
	p.logger.Debug("structural analysis", "tables", len(tables))

	for _, region := range tables {
		tableImg := imaging.Crop(gray, region.Rect())
		table := Table{Region: region}

		for _, rowBand := range p.detector.DetectRows(tableImg) {
			rowImg := imaging.Crop(tableImg, image.Rect(0, rowBand.Start, tableImg.Bounds().Dx(), rowBand.End))

			var rowData []string
			for _, cellBand := range p.detector.DetectCells(rowImg) {
				cellImg := imaging.Crop(rowImg, image.Rect(cellBand.Start, 0, cellBand.End, rowImg.Bounds().Dy()))
				text, err := p.cells.ReadCell(cellImg)
				if err != nil {
					p.logger.Warn("cell read failed", "table", region, "error", err)
					result.CellErrors++
					text = ""
				}
				rowData = append(rowData, text)
			}

			table.Rows = append(table.Rows, rowData)
			if id, found := extract.ProcessRow(result.Attributes, rowData); found && !result.HasIdentifier {
				result.Identifier = id
				result.HasIdentifier = true
				p.logger.Debug("identifier extracted", "identifier", id)
			}
		}
		result.Tables = append(result.Tables, table)
	}

	if len(tables) == 0 {
		result.HasSignature = p.detector.HasSignature(gray, nil)
		result.HasDate = p.detector.HasDate(gray, nil)
	}
	return result, nil
}

// ProcessPages processes page images in order and merges their results
// into one document.
func (p *Pipeline) ProcessPages(pages []image.Image) (*DocumentResult, error) {
	doc := &DocumentResult{Attributes: make(model.Attributes)}
	for i, pageImg := range pages {
		page, err := p.ProcessPage(pageImg)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		doc.Pages = append(doc.Pages, page)

		for key, value := range page.Attributes {
			doc.Attributes.Add(key, value)
		}
		if page.HasIdentifier && !doc.HasIdentifier {
			doc.Identifier = page.Identifier
			doc.HasIdentifier = true
		}
	}
	return doc, nil
}

// ProcessPDF extracts the page images embedded in a PDF and processes
// each in order.
func (p *Pipeline) ProcessPDF(pdfData []byte) (*DocumentResult, error) {
	pages, err := render.ExtractPageImages(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page images: %w", err)
	}
	return p.ProcessPages(pages)
}

// CheckCompleteness reports whether a document carries the closing
// formalities: a signature mark and a date mark on any of its pages.
// Typically run on the final page of a reporting form.
func (p *Pipeline) CheckCompleteness(pages []image.Image) (hasSignature, hasDate bool) {
	for _, pageImg := range pages {
		gray := imaging.ToGray(imaging.NormalizeResolution(pageImg, p.targetDPI))
		if !hasSignature && p.detector.HasSignature(gray, nil) {
			hasSignature = true
		}
		if !hasDate && p.detector.HasDate(gray, nil) {
			hasDate = true
		}
		if hasSignature && hasDate {
			break
		}
	}
	return hasSignature, hasDate
}

// ExtractValues maps the accumulated attributes to canonical field
// codes. The identifier, if present in the attributes via a labeled
// key, is carried over as well.
func (p *Pipeline) ExtractValues(attrs model.Attributes, identifier int, hasIdentifier bool) *model.AuditValues {
	values := extract.ExtractFields(attrs, p.patterns)
	values.Identifier = identifier
	values.HasIdentifier = hasIdentifier
	return values
}

// Reconcile compares extracted values against an already-resolved
// reference record.
func (p *Pipeline) Reconcile(values *model.AuditValues, ref model.ReferenceRecord) reconcile.Report {
	return reconcile.Reconcile(values, ref, p.patterns, p.required)
}

// Verify resolves the reference record for the extracted identifier and
// reconciles against it. It returns ErrNoIdentifier when no identifier
// was extracted and ErrUnknownIdentifier when the lookup comes up
// empty.
func (p *Pipeline) Verify(values *model.AuditValues, lookup model.LookupFunc) (reconcile.Report, error) {
	if !values.HasIdentifier {
		return reconcile.Report{}, ErrNoIdentifier
	}
	ref, ok := lookup(values.Identifier)
	if !ok {
		return reconcile.Report{}, fmt.Errorf("%w: %d", ErrUnknownIdentifier, values.Identifier)
	}

	report := p.Reconcile(values, ref)
	if report.Passed {
		p.logger.Info("document reconciled", "identifier", values.Identifier,
			"matched", report.MatchedRequired, "total", report.TotalRequired)
	} else {
		p.logger.Warn("document failed reconciliation", "identifier", values.Identifier,
			"missing", report.MissingRequired, "mismatched", report.MismatchedRequired)
	}
	return report, nil
}

var _ reconcile.ColumnMap = (*extract.PatternTable)(nil)

var _ ocr.TextReader = (*ocr.Engine)(nil)
