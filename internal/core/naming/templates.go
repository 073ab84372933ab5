package naming

import "github.com/ymatsuda/docfiler/internal/core/domain"

// Template tokens. Each resolves to a sanitized field value or its
// placeholder; {date} is YYYYMMDD and {ym} is the YYYY年MM月 display form
// of the same date.
const (
	tokenCategory   = "{category}"
	tokenPatient    = "{patient}"
	tokenDoctor     = "{doctor}"
	tokenClinic     = "{clinic}"
	tokenStaff      = "{staff}"
	tokenClient     = "{client}"
	tokenClientDept = "{client_dept}"
	tokenAddressee  = "{addressee}"
	tokenDate       = "{date}"
	tokenYM         = "{ym}"
)

// genericTemplate covers any category without a registered template.
const genericTemplate = tokenCategory + "_" + tokenPatient + "_" + tokenDate

// DefaultTemplates maps each category to its filing-name convention.
func DefaultTemplates() map[domain.Category]string {
	return map[domain.Category]string{
		domain.CategoryConsentForm:     "同意書_{patient}_{doctor}_{date}",
		domain.CategoryInsuranceCard:   "保険証_{patient}_{date}",
		domain.CategoryTreatmentReport: "{patient}_{client}_{client_dept}_{ym}_{clinic}_治療報告書_{staff}",
		domain.CategoryPatientRoster:   "患者リスト_{patient}_{doctor}_{date}",
		domain.CategoryInvoice:         "請求書_{addressee}_{ym}",
		domain.CategoryPerformanceRecord: "実績_{clinic}_{ym}",
	}
}

// Placeholders substituted for absent fields.
const (
	placeholderName       = "不明"
	placeholderClient     = "営業先不明"
	placeholderClientDept = "担当区不明"
	placeholderClinic     = "治療院不明"
	placeholderStaff      = "スタッフ不明"
)
