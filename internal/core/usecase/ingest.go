package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/naming"
	"github.com/ymatsuda/docfiler/internal/core/ports"
)

type IngestDocumentUseCase struct {
	repo  ports.DocumentRepository
	store ports.FileStore
	queue ports.MessageQueue
}

func NewIngestDocumentUseCase(
	repo ports.DocumentRepository,
	store ports.FileStore,
	queue ports.MessageQueue,
) *IngestDocumentUseCase {
	return &IngestDocumentUseCase{
		repo:  repo,
		store: store,
		queue: queue,
	}
}

// Upload stages the raw bytes, records the document and announces it for
// asynchronous filing. The original filename is kept for extension and
// audit purposes only; the filing name is synthesized later.
func (uc *IngestDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
) (*domain.Document, error) {
	id := uuid.NewString()
	stagingKey := fmt.Sprintf("staging/%s_%s", id, stagingName(filename))
	now := time.Now().UTC()

	if err := uc.store.Save(ctx, stagingKey, body); err != nil {
		return nil, fmt.Errorf("save to staging: %w", err)
	}

	doc := &domain.Document{
		ID:           id,
		OriginalName: filename,
		MimeType:     mimeType,
		StagingKey:   stagingKey,
		Status:       domain.StatusReceived,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document metadata: %w", err)
	}

	if err := uc.queue.PublishDocumentReceived(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish document-received event: %w", err)
	}

	return doc, nil
}

func stagingName(name string) string {
	base := naming.Sanitize(filepath.Base(name))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}
