package pdftext

import (
	"context"
	"testing"
)

func TestExtractTextRejectsNonPDF(t *testing.T) {
	e := New()
	if _, err := e.ExtractText(context.Background(), []byte("plain text, not a pdf")); err == nil {
		t.Fatalf("expected error for non-pdf input")
	}
}

func TestExtractTextRejectsEmptyInput(t *testing.T) {
	e := New()
	if _, err := e.ExtractText(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
}

func TestExtractTextRejectsTruncatedPDF(t *testing.T) {
	e := New()
	if _, err := e.ExtractText(context.Background(), []byte("%PDF-1.7\n1 0 obj")); err == nil {
		t.Fatalf("expected error for truncated pdf")
	}
}
