package render

import "testing"

func TestExtractTextRejectsGarbage(t *testing.T) {
	if _, err := ExtractText([]byte("not a pdf")); err == nil {
		t.Error("expected error for non-PDF input")
	}
}

func TestExtractPageImagesRejectsGarbage(t *testing.T) {
	if _, err := ExtractPageImages([]byte("not a pdf")); err == nil {
		t.Error("expected error for non-PDF input")
	}
}
