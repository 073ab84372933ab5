package extract

import "strings"

// honorifics are politeness markers stripped from candidate name tokens.
var honorifics = []string{"様", "さま", "殿"}

// labelWindows returns, for every occurrence of label in text, the span
// immediately following it on the same line, truncated at the earliest
// competing boundary label so trailing unrelated fields are never absorbed.
func labelWindows(text, label string, boundaries []string) []string {
	var out []string
	idx := 0
	for {
		i := strings.Index(text[idx:], label)
		if i < 0 {
			return out
		}
		start := idx + i + len(label)
		out = append(out, clipWindow(text[start:], boundaries))
		idx = start
	}
}

// labelNextLines returns, for every occurrence of label, the content of the
// line following the label's own line.
func labelNextLines(text, label string, boundaries []string) []string {
	var out []string
	idx := 0
	for {
		i := strings.Index(text[idx:], label)
		if i < 0 {
			return out
		}
		start := idx + i + len(label)
		rest := text[start:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			out = append(out, clipWindow(rest[nl+1:], boundaries))
		}
		idx = start
	}
}

func clipWindow(rest string, boundaries []string) string {
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	cut := len(rest)
	for _, b := range boundaries {
		if i := strings.Index(rest, b); i >= 0 && i < cut {
			cut = i
		}
	}
	rest = strings.TrimLeft(rest[:cut], " :：|｜・")
	return strings.TrimSpace(rest)
}

// stripHonorific removes one trailing politeness marker from a token.
func stripHonorific(token string) string {
	for _, h := range honorifics {
		if token != h && strings.HasSuffix(token, h) {
			return strings.TrimSuffix(token, h)
		}
	}
	return token
}

// namePairFromWindow takes the first two tokens of a label window, strips
// honorifics, and returns them joined when the validator accepts the pair.
func namePairFromWindow(window string, role Role) string {
	tokens := strings.Fields(window)
	if len(tokens) < 2 {
		return ""
	}
	surname := stripHonorific(tokens[0])
	given := stripHonorific(tokens[1])
	if !ValidFullName(surname, given, role) {
		return ""
	}
	return surname + given
}
