package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/ports"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type SearchDocumentsUseCase struct {
	index ports.DocumentIndex
}

func NewSearchDocumentsUseCase(index ports.DocumentIndex) *SearchDocumentsUseCase {
	return &SearchDocumentsUseCase{index: index}
}

func (uc *SearchDocumentsUseCase) SearchByPatient(ctx context.Context, patient string, limit int) ([]domain.FiledDocument, error) {
	patient = strings.TrimSpace(patient)
	if patient == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search documents", errors.New("empty patient name"))
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	docs, err := uc.index.SearchByPatient(ctx, patient, limit)
	if err != nil {
		return nil, fmt.Errorf("search documents by patient: %w", err)
	}
	return docs, nil
}
