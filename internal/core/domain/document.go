package domain

import "time"

type DocumentStatus string

const (
	StatusReceived   DocumentStatus = "received"
	StatusProcessing DocumentStatus = "processing"
	StatusFiled      DocumentStatus = "filed"
	StatusFailed     DocumentStatus = "failed"
)

// Category is the closed set of document kinds the classifier can emit.
// The string value is the Japanese label used in filenames and folder names.
type Category string

const (
	CategoryConsentForm       Category = "同意書"
	CategoryInsuranceCard     Category = "保険証"
	CategoryTreatmentReport   Category = "治療報告書"
	CategoryPatientRoster     Category = "患者リスト"
	CategoryInvoice           Category = "請求書"
	CategoryPerformanceRecord Category = "実績"
	CategoryUnclassified      Category = "その他"
)

func Categories() []Category {
	return []Category{
		CategoryConsentForm,
		CategoryInsuranceCard,
		CategoryTreatmentReport,
		CategoryPatientRoster,
		CategoryInvoice,
		CategoryPerformanceRecord,
		CategoryUnclassified,
	}
}

// Fields holds the values extracted from one document. An empty string means
// the extractor found no confident value; nothing here is ever guessed.
type Fields struct {
	Patient    string `json:"patient,omitempty"`
	Doctor     string `json:"doctor,omitempty"`
	Clinic     string `json:"clinic,omitempty"`
	Addressee  string `json:"addressee,omitempty"`
	Staff      string `json:"staff,omitempty"`
	Client     string `json:"client,omitempty"`
	ClientDept string `json:"client_dept,omitempty"`
	Date       string `json:"date,omitempty"` // YYYYMMDD
}

// FilingResult is what one pipeline run produces for a document.
type FilingResult struct {
	Category Category `json:"category"`
	Fields   Fields   `json:"fields"`
	Filename string   `json:"filename"`
}

type Document struct {
	ID           string         `json:"id"`
	OriginalName string         `json:"original_name"`
	MimeType     string         `json:"mime_type"`
	StagingKey   string         `json:"staging_key"`
	Category     Category       `json:"category,omitempty"`
	Fields       Fields         `json:"fields"`
	Folder       string         `json:"folder,omitempty"`
	Filename     string         `json:"filename,omitempty"`
	ShareLink    string         `json:"share_link,omitempty"`
	OCRChars     int            `json:"ocr_chars"`
	Status       DocumentStatus `json:"status"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// FiledDocument is a search hit from the document index.
type FiledDocument struct {
	ID       string `json:"id"`
	Patient  string `json:"patient"`
	Folder   string `json:"folder"`
	Filename string `json:"filename"`
	Link     string `json:"link,omitempty"`
}
