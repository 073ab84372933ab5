package ports

import (
	"context"
	"io"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document filing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentSearcher finds filed documents by patient name.
type DocumentSearcher interface {
	SearchByPatient(ctx context.Context, patient string, limit int) ([]domain.FiledDocument, error)
}

// LogExportService renders the recent filing log for download.
type LogExportService interface {
	ExportLog(ctx context.Context, limit int) ([]byte, error)
}
