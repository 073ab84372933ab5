package extract

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// 2024年3月7日 / 2024.3.7 / 2024-03-07, optional trailing day marker
	isoDate = regexp.MustCompile(`(20\d{2})[年./-] ?(\d{1,2})[月./-] ?(\d{1,2})日?`)
	// 2024/3/7
	slashDate = regexp.MustCompile(`(20\d{2})/(\d{1,2})/(\d{1,2})`)
	// 令和6年3月7日, 元年 = year one
	eraDate = regexp.MustCompile(`(令和|平成|昭和) ?(元|\d{1,2})年 ?(\d{1,2})月 ?(\d{1,2})日`)
)

// eraOffsets convert a regional era year count to the Gregorian year:
// gregorian = offset + era year.
var eraOffsets = map[string]int{
	"令和": 2018,
	"平成": 1988,
	"昭和": 1925,
}

// Date returns the first document date found anywhere in the text as an
// 8-digit YYYYMMDD string, or "" when none matches. Explicit western dates
// take priority over era-based ones.
func Date(text string) string {
	if text == "" {
		return ""
	}
	for _, re := range []*regexp.Regexp{isoDate, slashDate} {
		if m := re.FindStringSubmatch(text); m != nil {
			if d := formatDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); d != "" {
				return d
			}
		}
	}
	if m := eraDate.FindStringSubmatch(text); m != nil {
		year := eraOffsets[m[1]] + eraYear(m[2])
		if d := formatDate(year, atoi(m[3]), atoi(m[4])); d != "" {
			return d
		}
	}
	return ""
}

func formatDate(year, month, day int) string {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	return fmt.Sprintf("%04d%02d%02d", year, month, day)
}

func eraYear(s string) int {
	if s == "元" {
		return 1
	}
	return atoi(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
