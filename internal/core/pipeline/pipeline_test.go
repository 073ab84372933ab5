package pipeline

import (
	"regexp"
	"strings"
	"testing"

	"github.com/ymatsuda/docfiler/internal/core/domain"
	"github.com/ymatsuda/docfiler/internal/core/naming"
)

const reportText = `治療報告書
報告期間: 2024年3月1日〜2024年3月31日
所見: 経過良好
さくら治療院
山田 太郎 様`

func TestRunTreatmentReportScenario(t *testing.T) {
	p := NewDefault()
	got := p.Run(reportText, ".pdf")

	if got.Category != domain.CategoryTreatmentReport {
		t.Fatalf("Category = %s, want %s", got.Category, domain.CategoryTreatmentReport)
	}
	if got.Fields.Patient != "山田太郎" {
		t.Fatalf("Patient = %q, want 山田太郎", got.Fields.Patient)
	}
	if got.Fields.Clinic != "さくら治療院" {
		t.Fatalf("Clinic = %q, want さくら治療院", got.Fields.Clinic)
	}
	if got.Fields.Date != "20240301" {
		t.Fatalf("Date = %q, want 20240301", got.Fields.Date)
	}
	want := "山田太郎_営業先不明_担当区不明_2024年03月_さくら治療院_治療報告書_スタッフ不明.pdf"
	if got.Filename != want {
		t.Fatalf("Filename = %q, want %q", got.Filename, want)
	}
}

func TestRunInsuranceCardScenario(t *testing.T) {
	p := NewDefault()
	got := p.Run("保険証\n山田 太郎 様", ".jpg")

	if got.Category != domain.CategoryInsuranceCard {
		t.Fatalf("Category = %s, want %s", got.Category, domain.CategoryInsuranceCard)
	}
	if got.Fields.Date != "" {
		t.Fatalf("Date = %q, want absent", got.Fields.Date)
	}
	// No date on the card, so the filename carries the build-time date.
	if ok, _ := regexp.MatchString(`^保険証_山田太郎_\d{8}\.jpg$`, got.Filename); !ok {
		t.Fatalf("Filename = %q, want 保険証_山田太郎_<today>.jpg", got.Filename)
	}
}

func TestRunEmptyInput(t *testing.T) {
	p := NewDefault()
	got := p.Run("", ".pdf")

	if got.Category != domain.CategoryUnclassified {
		t.Fatalf("Category = %s, want %s", got.Category, domain.CategoryUnclassified)
	}
	if got.Fields != (domain.Fields{}) {
		t.Fatalf("Fields = %+v, want all absent", got.Fields)
	}
	if ok, _ := regexp.MatchString(`^その他_不明_\d{8}\.pdf$`, got.Filename); !ok {
		t.Fatalf("Filename = %q, want placeholder name", got.Filename)
	}
	if strings.ContainsAny(got.Filename, `\/:*?"<>|`) {
		t.Fatalf("Filename = %q, contains illegal characters", got.Filename)
	}
}

func TestRunFilenameSafety(t *testing.T) {
	p := NewDefault()
	inputs := []string{
		reportText,
		"請求書\nさくら治療院 御中\n合計 10,000円",
		"同意書\n患者氏名: 山田 太郎\n医師名: 佐藤 花子\n2024年3月1日",
		"患者リスト\n電話番号 住所",
	}
	for _, text := range inputs {
		got := p.Run(text, ".pdf")
		if strings.ContainsAny(got.Filename, `\/:*?"<>|`) {
			t.Errorf("Run(%.20q) filename %q contains illegal characters", text, got.Filename)
		}
		base := strings.TrimSuffix(got.Filename, ".pdf")
		if n := len([]rune(base)); n > naming.DefaultMaxBase {
			t.Errorf("Run(%.20q) base name is %d runes, want <= %d", text, n, naming.DefaultMaxBase)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	p := NewDefault()
	first := p.Run(reportText, ".pdf")
	for i := 0; i < 3; i++ {
		if got := p.Run(reportText, ".pdf"); got != first {
			t.Fatalf("Run() not deterministic:\n got %+v\nwant %+v", got, first)
		}
	}
}

func TestRunCollisionHandledByUniquify(t *testing.T) {
	p := NewDefault()
	first := p.Run(reportText, ".pdf")
	second := p.Run(reportText, ".pdf")
	if first.Filename != second.Filename {
		t.Fatalf("identical input produced different names: %q vs %q", first.Filename, second.Filename)
	}

	stored := map[string]bool{first.Filename: true}
	exists := func(folder, filename string) (bool, error) { return stored[filename], nil }
	unique, err := naming.Uniquify("/06_治療報告書", second.Filename, exists)
	if err != nil {
		t.Fatalf("Uniquify() error = %v", err)
	}
	if unique == first.Filename {
		t.Fatalf("Uniquify() returned the taken name %q", unique)
	}
	if !strings.HasSuffix(unique, "_v2.pdf") {
		t.Fatalf("Uniquify() = %q, want _v2 variant", unique)
	}
}
