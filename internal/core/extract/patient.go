package extract

import (
	"regexp"
	"strings"
)

// patientLabels are tried in order; more specific labels first.
var patientLabels = []string{"患者氏名", "被保険者氏名", "患者名", "お名前", "氏名"}

// patientBoundaries truncate a patient label window at the next unrelated
// field so an address or birth date is never absorbed into the name.
var patientBoundaries = []string{
	"生年月日", "住所", "電話番号", "電話", "性別", "年齢",
	"フリガナ", "ふりがな", "記号", "番号", "保険者",
}

const nameRunes = `\p{Han}\p{Hiragana}\p{Katakana}A-Za-zー々`

var (
	honorificPair = regexp.MustCompile(`([` + nameRunes + `]{1,10}) ([` + nameRunes + `]{1,10}) ?(?:様|さま)`)
	splitNameSpan = regexp.MustCompile(`氏[^名\n]{2,40}名`)
)

// Patient extracts the patient's full name. Strategies in confidence order:
// an honorific-suffixed name pair anywhere in the text, explicit patient
// label windows (same line, then following line), a generic 患者 proximity
// window, and finally salvage of a name trailing a split 氏…名 label.
func Patient(text string) string {
	if text == "" {
		return ""
	}

	if name := patientByHonorific(text); name != "" {
		return name
	}
	for _, label := range patientLabels {
		for _, window := range labelWindows(text, label, patientBoundaries) {
			if name := namePairFromWindow(window, RolePatient); name != "" {
				return name
			}
		}
	}
	for _, label := range patientLabels {
		for _, window := range labelNextLines(text, label, patientBoundaries) {
			if name := namePairFromWindow(window, RolePatient); name != "" {
				return name
			}
		}
	}
	for _, window := range genericPatientWindows(text) {
		if name := namePairFromWindow(window, RolePatient); name != "" {
			return name
		}
	}
	return patientFromSplitLabel(text)
}

// patientPhraseContinuations mark a 患者 that is the prefix of a longer
// heading or label phrase (患者リスト, 患者一覧, ...), not a bare name
// label. Opening a window there would read heading text as a name.
var patientPhraseContinuations = []string{"リスト", "一覧", "台帳", "情報", "氏名", "名", "数"}

// genericPatientWindows is the loosest fallback: a window after each bare
// 患者 occurrence. Occurrences inside longer phrases are skipped.
func genericPatientWindows(text string) []string {
	var out []string
	idx := 0
	for {
		i := strings.Index(text[idx:], "患者")
		if i < 0 {
			return out
		}
		start := idx + i + len("患者")
		if !startsWithContinuation(text[start:]) {
			out = append(out, clipWindow(text[start:], patientBoundaries))
		}
		idx = start
	}
}

func startsWithContinuation(rest string) bool {
	for _, c := range patientPhraseContinuations {
		if strings.HasPrefix(rest, c) {
			return true
		}
	}
	return false
}

func patientByHonorific(text string) string {
	for _, m := range honorificPair.FindAllStringSubmatch(text, -1) {
		surname, given := m[1], m[2]
		if ValidFullName(surname, given, RolePatient) {
			return surname + given
		}
	}
	return ""
}

// patientFromSplitLabel handles the case where the two characters of 氏名
// were OCR-split across a long span. The name usually survives at the tail
// of that span or directly after it.
func patientFromSplitLabel(text string) string {
	loc := splitNameSpan.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	inner := text[loc[0]+len("氏") : loc[1]-len("名")]
	tokens := strings.Fields(inner)
	if n := len(tokens); n >= 2 {
		surname := stripHonorific(tokens[n-2])
		given := stripHonorific(tokens[n-1])
		if ValidFullName(surname, given, RolePatient) {
			return surname + given
		}
	}
	return namePairFromWindow(clipWindow(text[loc[1]:], patientBoundaries), RolePatient)
}
