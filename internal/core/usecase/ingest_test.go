package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

type ingestRepoFake struct {
	created *domain.Document
	err     error
}

func (f *ingestRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	copyDoc := *doc
	f.created = &copyDoc
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}
func (f *ingestRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) SaveResult(context.Context, *domain.Document) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) ListRecent(context.Context, int) ([]domain.Document, error) {
	return nil, errors.New("not implemented")
}

type ingestStoreFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *ingestStoreFake) Save(_ context.Context, path string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = path
	f.savedBody = string(raw)
	return nil
}

func (f *ingestStoreFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}
func (f *ingestStoreFake) Exists(context.Context, string, string) (bool, error) {
	return false, errors.New("not implemented")
}
func (f *ingestStoreFake) EnsureFolder(context.Context, string) error {
	return errors.New("not implemented")
}
func (f *ingestStoreFake) ShareLink(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

type ingestQueueFake struct {
	documentID string
	err        error
}

func (f *ingestQueueFake) PublishDocumentReceived(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.documentID = documentID
	return nil
}

func (f *ingestQueueFake) SubscribeDocumentReceived(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &ingestRepoFake{}
	store := &ingestStoreFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, store, queue)

	doc, err := uc.Upload(context.Background(), "同意書 スキャン.pdf", "application/pdf", bytes.NewBufferString("%PDF"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected document id")
	}
	if doc.Status != domain.StatusReceived {
		t.Fatalf("expected status received, got %s", doc.Status)
	}
	if repo.created == nil {
		t.Fatalf("expected repo.Create call")
	}
	if queue.documentID != doc.ID {
		t.Fatalf("expected queued doc id %s, got %s", doc.ID, queue.documentID)
	}
	if !strings.HasPrefix(store.savedKey, "staging/") || !strings.HasSuffix(store.savedKey, "_同意書_スキャン.pdf") {
		t.Fatalf("expected sanitized staging key, got %s", store.savedKey)
	}
	if store.savedBody != "%PDF" {
		t.Fatalf("expected saved body, got %s", store.savedBody)
	}
}

func TestIngestUploadEmptyFilename(t *testing.T) {
	repo := &ingestRepoFake{}
	store := &ingestStoreFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, store, queue)

	_, err := uc.Upload(context.Background(), "", "application/octet-stream", bytes.NewBufferString("data"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasSuffix(store.savedKey, "_document.bin") {
		t.Fatalf("expected fallback staging name, got %s", store.savedKey)
	}
}

func TestIngestUploadStoreError(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, &ingestStoreFake{err: errors.New("disk full")}, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "card.jpg", "image/jpeg", bytes.NewBufferString("x"))
	if err == nil || !strings.Contains(err.Error(), "save to staging") {
		t.Fatalf("expected staging error, got %v", err)
	}
}

func TestIngestUploadQueueError(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, &ingestStoreFake{}, &ingestQueueFake{err: errors.New("queue down")})

	_, err := uc.Upload(context.Background(), "card.jpg", "image/jpeg", bytes.NewBufferString("x"))
	if err == nil || !strings.Contains(err.Error(), "publish document-received event") {
		t.Fatalf("expected publish error, got %v", err)
	}
}
