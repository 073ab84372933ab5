// Package excel renders the filing log as an XLSX workbook for office
// staff who reconcile filed documents against paper intake.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ymatsuda/docfiler/internal/core/domain"
)

const sheetName = "FilingLog"

var headers = []string{
	"保存日時",
	"分類",
	"患者",
	"先生",
	"抽出日付",
	"保存フォルダ",
	"ファイル名",
	"リンク",
	"OCR文字数",
	"ステータス",
	"エラー",
}

type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes one row per document, newest first, matching the order
// the repository returns them in.
func (e *Exporter) Export(ctx context.Context, docs []domain.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(sheetName); err == nil {
		f.SetActiveSheet(index)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for row, doc := range docs {
		values := []any{
			doc.UpdatedAt.Format("2006-01-02 15:04:05"),
			string(doc.Category),
			doc.Fields.Patient,
			doc.Fields.Doctor,
			doc.Fields.Date,
			doc.Folder,
			doc.Filename,
			doc.ShareLink,
			doc.OCRChars,
			string(doc.Status),
			doc.Error,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 20)
	_ = f.SetColWidth(sheetName, "B", "B", 14)
	_ = f.SetColWidth(sheetName, "C", "D", 16)
	_ = f.SetColWidth(sheetName, "F", "G", 36)
	_ = f.SetColWidth(sheetName, "H", "H", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
