// Package textnorm canonicalizes raw OCR transcripts before classification
// and field extraction. Every downstream component assumes its output.
package textnorm

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// repairLabels are multi-character label and suffix phrases OCR tends to split
// with stray whitespace ("治 療 院", "氏 名"). They are rejoined before any
// extractor runs. Longer phrases are applied first so that "患者氏名" wins
// over the bare "氏名".
var repairLabels = []string{
	// institution suffixes
	"治療院", "クリニック", "医院", "病院", "整骨院", "接骨院", "鍼灸院",
	// person labels
	"患者氏名", "被保険者氏名", "患者名", "氏名", "お名前", "患者",
	"医師名", "担当医", "主治医", "処方医", "先生",
	"担当者", "施術者", "作成者", "スタッフ", "記入者",
	// business labels
	"営業先", "会社名", "取引先", "部署", "担当区", "請求先", "御中",
	// structural labels extractors truncate on
	"生年月日", "住所", "電話番号", "保険者番号", "有効期限", "交付日",
	// category-defining phrases
	"同意書", "保険証", "健康保険証", "治療報告書", "報告書", "請求書",
	"患者リスト", "患者一覧", "療養費支給申請書", "報告期間",
}

type repairRule struct {
	re    *regexp.Regexp
	label string
}

var (
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	edgeWS       = regexp.MustCompile(` *\n *`)
	repairRules  = buildRepairRules(repairLabels)
)

func buildRepairRules(labels []string) []repairRule {
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len([]rune(sorted[i])) > len([]rune(sorted[j]))
	})

	rules := make([]repairRule, 0, len(sorted))
	for _, label := range sorted {
		runes := []rune(label)
		if len(runes) < 2 {
			continue
		}
		parts := make([]string, len(runes))
		for i, r := range runes {
			parts[i] = regexp.QuoteMeta(string(r))
		}
		rules = append(rules, repairRule{
			re:    regexp.MustCompile(strings.Join(parts, `[ \t]*`)),
			label: label,
		})
	}
	return rules
}

// Normalize canonicalizes raw OCR text: NFKC unification (full-width ASCII,
// half-width katakana, compatibility forms), horizontal whitespace collapsed
// to single spaces with line breaks preserved, and split label phrases
// rejoined. Normalize(Normalize(x)) == Normalize(x) for any x, and empty
// input yields an empty string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := norm.NFKC.String(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalWS.ReplaceAllString(text, " ")
	text = edgeWS.ReplaceAllString(text, "\n")

	for _, rule := range repairRules {
		text = rule.re.ReplaceAllString(text, rule.label)
	}

	return strings.TrimSpace(text)
}
