package usecase

import (
	"context"
	"fmt"

	"github.com/ymatsuda/docfiler/internal/core/ports"
)

const (
	defaultExportLimit = 200
	maxExportLimit     = 2000
)

type ExportLogUseCase struct {
	repo     ports.DocumentRepository
	exporter ports.LogExporter
}

func NewExportLogUseCase(repo ports.DocumentRepository, exporter ports.LogExporter) *ExportLogUseCase {
	return &ExportLogUseCase{repo: repo, exporter: exporter}
}

// ExportLog renders the most recent filings as a spreadsheet.
func (uc *ExportLogUseCase) ExportLog(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = defaultExportLimit
	}
	if limit > maxExportLimit {
		limit = maxExportLimit
	}

	docs, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent documents: %w", err)
	}

	data, err := uc.exporter.Export(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("export filing log: %w", err)
	}
	return data, nil
}
