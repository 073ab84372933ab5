package classify

import "github.com/ymatsuda/docfiler/internal/core/domain"

// Pattern is one weighted keyword/regex for a category. Anchor patterns are
// category-defining: a category cannot win without at least one anchor hit,
// no matter how high its raw score.
type Pattern struct {
	Expr   string `yaml:"expr"`
	Weight int    `yaml:"weight"`
	Anchor bool   `yaml:"anchor,omitempty"`
}

// Rule is the scoring table for one category. Negatives subtract their
// weight per occurrence to suppress cross-category false positives.
type Rule struct {
	Category  domain.Category `yaml:"category"`
	Patterns  []Pattern       `yaml:"patterns"`
	Negatives []Pattern       `yaml:"negatives,omitempty"`
}

// StrongSignal short-circuits scoring entirely: when every phrase in AllOf
// occurs, the document is that category, full stop. These exist because some
// phrases are category-defining and must not be diluted by weak keyword
// hits elsewhere in the text.
type StrongSignal struct {
	Category domain.Category `yaml:"category"`
	AllOf    []string        `yaml:"all_of"`
}

// Override is a domain tie-break applied after scoring: when the winner is
// When and any AnyOf phrase occurs without any NoneOf phrase, the winner
// becomes Prefer instead.
type Override struct {
	When   domain.Category `yaml:"when"`
	Prefer domain.Category `yaml:"prefer"`
	AnyOf  []string        `yaml:"any_of"`
	NoneOf []string        `yaml:"none_of,omitempty"`
}

// RuleSet is the full declarative classifier configuration. The weights and
// the margin were tuned against a labeled document corpus; deployments may
// override them from a config file, the algorithm stays fixed.
type RuleSet struct {
	StrongSignals []StrongSignal `yaml:"strong_signals"`
	Rules         []Rule         `yaml:"rules"`
	Overrides     []Override     `yaml:"overrides"`
	Margin        int            `yaml:"margin"`
}

// DefaultRuleSet returns the built-in tables for the clinic paperwork
// categories.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Margin: 2,
		StrongSignals: []StrongSignal{
			{Category: domain.CategoryPatientRoster, AllOf: []string{"患者リスト"}},
			{Category: domain.CategoryPatientRoster, AllOf: []string{"患者一覧"}},
			{Category: domain.CategoryPatientRoster, AllOf: []string{"患者台帳"}},
			{Category: domain.CategoryTreatmentReport, AllOf: []string{"治療報告書"}},
			{Category: domain.CategoryTreatmentReport, AllOf: []string{"報告書", "報告期間"}},
			{Category: domain.CategoryPerformanceRecord, AllOf: []string{"療養費支給申請書"}},
			{Category: domain.CategoryInsuranceCard, AllOf: []string{"健康保険証"}},
		},
		Rules: []Rule{
			{
				Category: domain.CategoryConsentForm,
				Patterns: []Pattern{
					{Expr: "同意書", Weight: 5, Anchor: true},
					{Expr: "同意", Weight: 2},
					{Expr: "承諾", Weight: 2},
					{Expr: "署名", Weight: 1},
					{Expr: "サイン", Weight: 1},
					{Expr: "(?i)consent", Weight: 2},
				},
			},
			{
				Category: domain.CategoryInsuranceCard,
				Patterns: []Pattern{
					{Expr: "健康保険証", Weight: 5, Anchor: true},
					{Expr: "保険証", Weight: 4, Anchor: true},
					{Expr: "保険者番号", Weight: 3},
					{Expr: "保険者名", Weight: 2},
					{Expr: "有効期限", Weight: 2},
					{Expr: "交付日", Weight: 2},
					{Expr: "記号", Weight: 1},
					{Expr: "番号", Weight: 1},
				},
			},
			{
				Category: domain.CategoryTreatmentReport,
				Patterns: []Pattern{
					{Expr: "治療報告書", Weight: 5, Anchor: true},
					{Expr: "報告書", Weight: 3, Anchor: true},
					{Expr: "報告期間", Weight: 3},
					{Expr: "所見", Weight: 2},
					{Expr: "診断", Weight: 2},
					{Expr: "経過", Weight: 2},
					{Expr: "再評価", Weight: 2},
					{Expr: "施術計画|治療計画", Weight: 2},
					{Expr: "症状|疼痛|ROM|機能評価", Weight: 1},
				},
			},
			{
				Category: domain.CategoryPatientRoster,
				Patterns: []Pattern{
					{Expr: "患者リスト", Weight: 5, Anchor: true},
					{Expr: "患者一覧", Weight: 5, Anchor: true},
					{Expr: "患者台帳", Weight: 5, Anchor: true},
					{Expr: `(?i)patient\s*list`, Weight: 5, Anchor: true},
					{Expr: "フェイスシート", Weight: 3, Anchor: true},
					{Expr: "患者情報", Weight: 2, Anchor: true},
					{Expr: "利用者情報", Weight: 2},
					{Expr: "入居者情報", Weight: 2},
					{Expr: "ご利用者様", Weight: 2},
					{Expr: "介護状況", Weight: 2},
					{Expr: "要介護", Weight: 2},
					{Expr: "認定日", Weight: 1},
					{Expr: "電話番号", Weight: 1},
					{Expr: "住所", Weight: 1},
					{Expr: "生年月日", Weight: 1},
				},
			},
			{
				Category: domain.CategoryInvoice,
				Patterns: []Pattern{
					{Expr: "請求書", Weight: 5, Anchor: true},
					{Expr: "(?i)invoice", Weight: 5, Anchor: true},
					{Expr: "請求金額|ご請求金額", Weight: 3, Anchor: true},
					{Expr: "請求書番号", Weight: 3},
					{Expr: "請求日", Weight: 2},
					{Expr: "振込先|お振込", Weight: 2},
					{Expr: "口座番号", Weight: 2},
					{Expr: "消費税", Weight: 2},
					{Expr: "銀行", Weight: 1},
					{Expr: "支店", Weight: 1},
					{Expr: "御中", Weight: 1},
					{Expr: "内訳", Weight: 1},
					{Expr: "数量", Weight: 1},
					{Expr: "単価", Weight: 1},
					{Expr: "合計", Weight: 1},
				},
				Negatives: []Pattern{
					{Expr: "見積書", Weight: 5},
					{Expr: "納品書", Weight: 5},
					{Expr: "領収書", Weight: 4},
				},
			},
			{
				Category: domain.CategoryPerformanceRecord,
				Patterns: []Pattern{
					{Expr: "療養費支給申請書", Weight: 5, Anchor: true},
					{Expr: "施術内訳", Weight: 3, Anchor: true},
					{Expr: "施術者|施術管理者", Weight: 2, Anchor: true},
					{Expr: "あんま|マッサージ", Weight: 2},
					{Expr: "施術日|施術年月日", Weight: 2},
					{Expr: "往療", Weight: 2},
					{Expr: "施術回数", Weight: 2},
					{Expr: "公費負担", Weight: 2},
					{Expr: "受給者番号", Weight: 2},
					{Expr: "通院", Weight: 1},
					{Expr: "申請者", Weight: 1},
					{Expr: "審査", Weight: 1},
					{Expr: "摘要", Weight: 1},
					{Expr: "単価", Weight: 1},
					{Expr: "合計", Weight: 1},
				},
			},
		},
		Overrides: []Override{
			{
				When:   domain.CategoryPerformanceRecord,
				Prefer: domain.CategoryTreatmentReport,
				AnyOf:  []string{"報告期間", "所見", "施術経過"},
				NoneOf: []string{"療養費支給申請書"},
			},
			{
				When:   domain.CategoryPatientRoster,
				Prefer: domain.CategoryTreatmentReport,
				AnyOf:  []string{"報告期間", "所見"},
			},
			{
				When:   domain.CategoryPerformanceRecord,
				Prefer: domain.CategoryPatientRoster,
				AnyOf:  []string{"ケアプラン", "介護計画", "要介護"},
				NoneOf: []string{"療養費支給申請書"},
			},
		},
	}
}
