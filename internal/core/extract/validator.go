// Package extract pulls structured fields out of normalized OCR text.
// Every extractor returns the empty string when no confident value exists;
// nothing in this package panics or guesses.
package extract

import (
	"strings"
	"unicode"
)

// Role tags the field a candidate name was found for. The validator applies
// a few extra exclusions for the patient role, where label bleed-through is
// most common.
type Role int

const (
	RolePatient Role = iota
	RoleDoctor
	RoleOther
)

// institutionSuffixes disqualify a token as part of a person name: clinic and
// hospital suffixes plus the location words that show up in addresses.
var institutionSuffixes = []string{
	"治療院", "クリニック", "医院", "病院", "整骨院", "接骨院", "鍼灸院",
	"薬局", "病棟", "センター", "市", "区", "丁目", "番地",
}

// addressMarkers mark a token as an address fragment wherever they occur
// inside it.
var addressMarkers = []string{
	"住所", "丁目", "番地", "号室", "アパート", "マンション", "ハイツ", "コーポ",
}

// structuralLabels are the bare label words an extractor window can latch
// onto instead of a value. Exact match only.
var structuralLabels = map[string]struct{}{
	"氏名":   {},
	"名前":   {},
	"お名前":  {},
	"患者":   {},
	"先生":   {},
	"医師":   {},
	"被保険者": {},
	"保険者":  {},
	"様式":   {},
	"署名":   {},
	"記入":   {},
}

// patientExclusions are exact-match rejections applied only to patient-role
// candidates: neighbouring field labels that commonly follow the name box.
var patientExclusions = map[string]struct{}{
	"生年月日": {},
	"住所":   {},
	"電話番号": {},
	"記号":   {},
	"番号":   {},
	"性別":   {},
	"年齢":   {},
}

// ValidFullName reports whether the surname/given-name candidate pair is
// plausibly a human full name. It is the single place false-positive
// suppression lives; every name-bearing extractor routes candidates here.
func ValidFullName(surname, given string, role Role) bool {
	if surname == "" || given == "" {
		return false
	}
	for _, token := range []string{surname, given} {
		if !validNameToken(token, role) {
			return false
		}
	}
	// A pair of one-character tokens is OCR noise more often than a name.
	if runeLen(surname) == 1 && runeLen(given) == 1 {
		return false
	}
	return true
}

func validNameToken(token string, role Role) bool {
	if containsDigit(token) {
		return false
	}
	for _, suffix := range institutionSuffixes {
		if strings.HasSuffix(token, suffix) {
			return false
		}
	}
	for _, marker := range addressMarkers {
		if strings.Contains(token, marker) {
			return false
		}
	}
	if _, ok := structuralLabels[token]; ok {
		return false
	}
	if role == RolePatient {
		if _, ok := patientExclusions[token]; ok {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return len([]rune(s))
}
