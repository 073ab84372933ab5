package ports

import (
	"context"
	"io"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

// OCRService turns document bytes into a raw text transcript. An empty
// transcript with a nil error means the engine found no text.
type OCRService interface {
	DetectText(ctx context.Context, data []byte, mimeType string) (string, error)
}

// TextLayerExtractor reads the embedded text layer of a PDF, when one
// exists, so born-digital documents skip the OCR round trip.
type TextLayerExtractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// FileStore stores document bytes and answers the collision checks of the
// filename builder. Paths are folder-slash-filename keys relative to the
// store root.
type FileStore interface {
	Save(ctx context.Context, path string, data io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, folder, filename string) (bool, error)
	EnsureFolder(ctx context.Context, folder string) error
	ShareLink(ctx context.Context, path string) (string, error)
}

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveResult(ctx context.Context, doc *domain.Document) error
	ListRecent(ctx context.Context, limit int) ([]domain.Document, error)
}

// MessageQueue publishes/consumes document-received events.
type MessageQueue interface {
	PublishDocumentReceived(ctx context.Context, documentID string) error
	SubscribeDocumentReceived(ctx context.Context, handler func(context.Context, string) error) error
}

// DocumentIndex supports patient-centric lookup of filed documents.
type DocumentIndex interface {
	IndexDocument(ctx context.Context, doc *domain.Document) error
	SearchByPatient(ctx context.Context, patient string, limit int) ([]domain.FiledDocument, error)
}

// LogExporter renders the filing log as a downloadable spreadsheet.
type LogExporter interface {
	Export(ctx context.Context, docs []domain.Document) ([]byte, error)
}
