package cellula

import (
	"io"
	"log/slog"

	"github.com/mhenke/cellula/detect"
	"github.com/mhenke/cellula/extract"
	"github.com/mhenke/cellula/imaging"
	"github.com/mhenke/cellula/model"
	"github.com/mhenke/cellula/ocr"
)

// Pipeline runs the page analysis end to end. Construct one per worker:
// the OCR engine behind the cell reader is stateful and must not be
// shared across concurrent calls.
type Pipeline struct {
	reader    ocr.TextReader
	detector  *detect.Detector
	cells     *ocr.CellReader
	patterns  *extract.PatternTable
	required  []model.FieldCode
	targetDPI int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// New builds a Pipeline around a text reader with the default detector,
// pattern table, and required fields.
func New(reader ocr.TextReader, opts ...Option) *Pipeline {
	p := &Pipeline{
		reader:    reader,
		detector:  detect.New(),
		cells:     ocr.NewCellReader(reader),
		patterns:  extract.DefaultPatternTable(),
		required:  DefaultRequiredFields(),
		targetDPI: imaging.DefaultTargetDPI,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultRequiredFields returns the field codes that gate the
// reconciliation decision on the standard reporting form. All codes are
// required except ab2s1n11, which the form reports in a format the
// reference data does not yet carry.
func DefaultRequiredFields() []model.FieldCode {
	var required []model.FieldCode
	for _, code := range model.AllFieldCodes() {
		if code == model.FieldAb2S1N11 {
			continue
		}
		required = append(required, code)
	}
	return required
}

// WithDetectorConfig replaces the structural detector configuration.
func WithDetectorConfig(config detect.Config) Option {
	return func(p *Pipeline) {
		p.detector = detect.NewWithConfig(config)
	}
}

// WithCellConfig replaces the digit-recovery settings of the cell
// reader. The reader passed to New is preserved.
func WithCellConfig(config ocr.CellConfig) Option {
	return func(p *Pipeline) {
		p.cells = ocr.NewCellReaderWithConfig(p.reader, config)
	}
}

// WithPatternTable replaces the field pattern table.
func WithPatternTable(table *extract.PatternTable) Option {
	return func(p *Pipeline) {
		p.patterns = table
	}
}

// WithRequiredFields replaces the set of field codes that gate the
// reconciliation decision.
func WithRequiredFields(codes ...model.FieldCode) Option {
	return func(p *Pipeline) {
		p.required = codes
	}
}

// WithTargetDPI changes the resolution pages are normalized to before
// detection. A value of zero or less disables normalization, which is
// useful for synthetic images whose geometry is already in pixels.
func WithTargetDPI(dpi int) Option {
	return func(p *Pipeline) {
		p.targetDPI = dpi
	}
}

// WithLogger sets the structured logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}
