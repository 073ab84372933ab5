package extract

import "regexp"

// doctorLabels precede the name. 先生 is deliberately absent: in these
// documents it trails the name, which trailingSensei handles, and a window
// opened after a trailing 先生 would scan unrelated text.
var doctorLabels = []string{"医師名", "担当医", "主治医", "処方医", "Dr."}

var doctorBoundaries = []string{"患者", "住所", "電話", "生年月日", "医療機関"}

// trailingSensei matches a name pair directly before the clinician honorific.
var trailingSensei = regexp.MustCompile(`([` + nameRunes + `]{1,10}) ([` + nameRunes + `]{1,10}) ?先生`)

// Doctor extracts the clinician's full name from clinician-role label
// windows. Unlike the patient extractor there is no 様-suffix fallback, and
// a single recognized token is never enough: two validated tokens or nothing.
func Doctor(text string) string {
	if text == "" {
		return ""
	}
	for _, label := range doctorLabels {
		for _, window := range labelWindows(text, label, doctorBoundaries) {
			if name := namePairFromWindow(window, RoleDoctor); name != "" {
				return name
			}
		}
	}
	for _, m := range trailingSensei.FindAllStringSubmatch(text, -1) {
		if ValidFullName(m[1], m[2], RoleDoctor) {
			return m[1] + m[2]
		}
	}
	return ""
}
