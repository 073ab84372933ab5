package extract

import "strings"

var (
	staffLabels      = []string{"スタッフ", "担当者", "施術者", "作成者", "記入者"}
	clientLabels     = []string{"営業先", "会社名", "取引先"}
	clientDeptLabels = []string{"担当区", "部署", "担当課"}

	staffBoundaries = []string{"患者", "住所", "電話", "日付"}
)

// Staff extracts the preparer/person-in-charge. A single token is acceptable
// here; the full-name-pair requirement applies to patients and clinicians,
// not to internal staff initials and handles.
func Staff(text string) string {
	return firstToken(text, staffLabels, staffBoundaries)
}

// Client extracts the sales counterpart. Single pass, no fallback chain;
// a miss is acceptable for this field.
func Client(text string) string {
	return firstToken(text, clientLabels, nil)
}

// ClientDept extracts the counterpart department. Single pass like Client.
func ClientDept(text string) string {
	return firstToken(text, clientDeptLabels, nil)
}

func firstToken(text string, labels, boundaries []string) string {
	if text == "" {
		return ""
	}
	for _, label := range labels {
		for _, window := range labelWindows(text, label, boundaries) {
			tokens := strings.Fields(window)
			if len(tokens) == 0 {
				continue
			}
			if token := stripHonorific(tokens[0]); token != "" {
				return token
			}
		}
	}
	return ""
}
