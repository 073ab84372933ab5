package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/naming"
	"github.com/ymatsuda/docfiler/internal/core/pipeline"
	"github.com/ymatsuda/docfiler/internal/core/ports"
)

// minTextLayerChars is the threshold below which a PDF text layer is
// considered a scan artifact and the document goes through OCR anyway.
const minTextLayerChars = 30

type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	store     ports.FileStore
	ocr       ports.OCRService
	textLayer ports.TextLayerExtractor
	pipeline  *pipeline.Pipeline
	index     ports.DocumentIndex
	routes    map[domain.Category]string
	fallback  string
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	store ports.FileStore,
	ocr ports.OCRService,
	textLayer ports.TextLayerExtractor,
	pl *pipeline.Pipeline,
	index ports.DocumentIndex,
	routes map[domain.Category]string,
	fallbackFolder string,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		store:     store,
		ocr:       ocr,
		textLayer: textLayer,
		pipeline:  pl,
		index:     index,
		routes:    routes,
		fallback:  fallbackFolder,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	doc, err := uc.file(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResult(ctx, doc); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("save filing result: %w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save filing result: %w", err)
	}

	if err := uc.index.IndexDocument(ctx, doc); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("index document: %w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("index document: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) file(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	data, err := uc.readStaging(ctx, doc)
	if err != nil {
		return nil, err
	}

	text, err := uc.extractText(ctx, doc, data)
	if err != nil {
		return nil, err
	}

	result := uc.pipeline.Run(text, extensionFor(doc))
	folder := uc.folderFor(result.Category)

	if err := uc.store.EnsureFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("ensure folder %q: %w", folder, err)
	}

	filename, err := naming.Uniquify(folder, result.Filename, func(folder, name string) (bool, error) {
		return uc.store.Exists(ctx, folder, name)
	})
	if err != nil {
		return nil, fmt.Errorf("uniquify filename: %w", err)
	}

	target := path.Join(folder, filename)
	if err := uc.store.Save(ctx, target, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("save filed document: %w", err)
	}

	link, err := uc.store.ShareLink(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("create share link: %w", err)
	}

	doc.Category = result.Category
	doc.Fields = result.Fields
	doc.Folder = folder
	doc.Filename = filename
	doc.ShareLink = link
	doc.OCRChars = utf8.RuneCountInString(text)
	doc.Status = domain.StatusFiled
	doc.Error = ""
	return doc, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *ProcessDocumentUseCase) readStaging(ctx context.Context, doc *domain.Document) ([]byte, error) {
	r, err := uc.store.Open(ctx, doc.StagingKey)
	if err != nil {
		return nil, fmt.Errorf("open staged document: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read staged document: %w", err)
	}
	return data, nil
}

// extractText prefers the PDF's embedded text layer; scanned PDFs with no
// usable layer and all images go through OCR.
func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document, data []byte) (string, error) {
	if doc.MimeType == "application/pdf" {
		text, err := uc.textLayer.ExtractText(ctx, data)
		if err == nil && utf8.RuneCountInString(strings.TrimSpace(text)) >= minTextLayerChars {
			return text, nil
		}
	}

	text, err := uc.ocr.DetectText(ctx, data, doc.MimeType)
	if err != nil {
		return "", fmt.Errorf("ocr document: %w", err)
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) folderFor(category domain.Category) string {
	if folder, ok := uc.routes[category]; ok {
		return folder
	}
	return uc.fallback
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}

func extensionFor(doc *domain.Document) string {
	if ext := strings.ToLower(filepath.Ext(doc.OriginalName)); ext != "" {
		return ext
	}
	switch doc.MimeType {
	case "application/pdf":
		return ".pdf"
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".bin"
	}
}
