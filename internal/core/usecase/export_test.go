package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

type exportRepoFake struct {
	limit int
	docs  []domain.Document
	err   error
}

func (f *exportRepoFake) Create(context.Context, *domain.Document) error { return nil }
func (f *exportRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}
func (f *exportRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return errors.New("not implemented")
}
func (f *exportRepoFake) SaveResult(context.Context, *domain.Document) error {
	return errors.New("not implemented")
}

func (f *exportRepoFake) ListRecent(_ context.Context, limit int) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.limit = limit
	return f.docs, nil
}

type exporterFake struct {
	count int
	err   error
}

func (f *exporterFake) Export(_ context.Context, docs []domain.Document) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.count = len(docs)
	return bytes.Repeat([]byte{0x42}, 8), nil
}

func TestExportLog(t *testing.T) {
	repo := &exportRepoFake{docs: []domain.Document{{ID: "a"}, {ID: "b"}}}
	exporter := &exporterFake{}
	uc := NewExportLogUseCase(repo, exporter)

	data, err := uc.ExportLog(context.Background(), 0)
	if err != nil {
		t.Fatalf("ExportLog() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected exported bytes")
	}
	if repo.limit != defaultExportLimit {
		t.Fatalf("limit = %d, want default %d", repo.limit, defaultExportLimit)
	}
	if exporter.count != 2 {
		t.Fatalf("exported %d docs, want 2", exporter.count)
	}
}

func TestExportLogLimitCap(t *testing.T) {
	repo := &exportRepoFake{}
	uc := NewExportLogUseCase(repo, &exporterFake{})

	if _, err := uc.ExportLog(context.Background(), 1_000_000); err != nil {
		t.Fatalf("ExportLog() error = %v", err)
	}
	if repo.limit != maxExportLimit {
		t.Fatalf("limit = %d, want cap %d", repo.limit, maxExportLimit)
	}
}

func TestExportLogRepoError(t *testing.T) {
	uc := NewExportLogUseCase(&exportRepoFake{err: errors.New("db down")}, &exporterFake{})

	_, err := uc.ExportLog(context.Background(), 10)
	if err == nil || !strings.Contains(err.Error(), "list recent documents") {
		t.Fatalf("expected list error, got %v", err)
	}
}
