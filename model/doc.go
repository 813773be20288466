// Package model provides the shared data types for the document analysis
// pipeline.
//
// # Geometry
//
// Detection results are expressed in pixel space:
//
//   - [Region] - axis-aligned rectangle relative to a page image
//   - [Band] - half-open interval along one image axis (row or cell band)
//
// # Domain types
//
// Extraction and reconciliation operate on:
//
//   - [Attributes] - the per-document key/value set built from OCR'd rows
//   - [FieldCode] - canonical identifiers for the reconciled figures
//   - [FieldValue], [AuditValues] - extracted values plus match state
//   - [ReferenceRecord], [LookupFunc] - the externally owned canonical data
//
// All types are created fresh per document-processing run; nothing in
// this package is persisted by the core.
package model
