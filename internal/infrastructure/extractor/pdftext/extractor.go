// Package pdftext reads the embedded text layer of born-digital PDFs so
// they can skip OCR entirely.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// ExtractText returns the concatenated text layer. Scanned PDFs typically
// yield an empty or near-empty string; the caller decides when to fall
// back to OCR. The pdf library panics on some malformed files, so parsing
// is guarded.
func (e *Extractor) ExtractText(_ context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}
	return buf.String(), nil
}
