// Package pipeline sequences the pure document-filing steps: normalize the
// OCR transcript, classify it, extract the fields, and compose the base
// filename. It holds no state across calls and does no I/O; collision
// checks against the destination store happen in the orchestration layer.
package pipeline

import (
	"github.com/ymatsuda/docfiler/internal/core/classify"
	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/extract"
	"github.com/ymatsuda/docfiler/internal/core/naming"
	"github.com/ymatsuda/docfiler/internal/core/textnorm"
)

type Pipeline struct {
	classifier *classify.Classifier
	builder    *naming.Builder
}

func New(classifier *classify.Classifier, builder *naming.Builder) *Pipeline {
	return &Pipeline{classifier: classifier, builder: builder}
}

// NewDefault wires the built-in rule set and templates.
func NewDefault() *Pipeline {
	return New(classify.NewDefault(), naming.NewBuilder())
}

// Run processes one document's raw OCR text. ext is the target file
// extension including the dot. Empty text is valid input and yields an
// unclassified result with placeholder-only fields.
func (p *Pipeline) Run(rawText, ext string) domain.FilingResult {
	text := textnorm.Normalize(rawText)
	category := p.classifier.Classify(text)
	fields := extract.All(text)
	return domain.FilingResult{
		Category: category,
		Fields:   fields,
		Filename: p.builder.Build(category, fields, ext),
	}
}
