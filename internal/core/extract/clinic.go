package extract

import (
	"regexp"
	"strings"
)

var clinicLabels = []string{"医療機関名", "施設名", "機関名", "治療院名"}

var addresseeLabels = []string{"請求先", "宛名", "宛先"}

const clinicRunes = `\p{Han}\p{Hiragana}\p{Katakana}A-Za-z0-9ー々`

var (
	clinicSuffix   = `(?:治療院|クリニック|整骨院|接骨院|鍼灸院|医院|病院)`
	clinicPattern  = regexp.MustCompile(`([` + clinicRunes + `]{1,30}` + clinicSuffix + `)`)
	onchuAddressee = regexp.MustCompile(`([^\s]{2,50}) ?御中`)
)

// Clinic extracts the institution name. An explicit institution label wins;
// otherwise text directly preceding 御中 is preferred when it carries an
// institution suffix (the deferential marker is the tighter boundary), and a
// maximal run before a recognized suffix word is the last resort.
func Clinic(text string) string {
	if text == "" {
		return ""
	}
	for _, label := range clinicLabels {
		for _, window := range labelWindows(text, label, nil) {
			if window != "" {
				return strings.ReplaceAll(window, " ", "")
			}
		}
	}
	if m := onchuAddressee.FindStringSubmatch(text); m != nil {
		if candidate := m[1]; hasClinicSuffix(candidate) {
			return candidate
		}
	}
	if m := clinicPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// InvoiceAddressee specializes Clinic for the invoice filename: explicit
// bill-to labels first, then the 御中-anchored capture regardless of suffix,
// then the generic institution scan.
func InvoiceAddressee(text string) string {
	if text == "" {
		return ""
	}
	for _, label := range addresseeLabels {
		for _, window := range labelWindows(text, label, nil) {
			if window != "" {
				return strings.ReplaceAll(window, " ", "")
			}
		}
	}
	if m := onchuAddressee.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return Clinic(text)
}

func hasClinicSuffix(s string) bool {
	for _, suffix := range []string{"治療院", "クリニック", "整骨院", "接骨院", "鍼灸院", "医院", "病院"} {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
