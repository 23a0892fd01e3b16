package duplicate

import (
	"regexp"
	"strconv"
	"strings"
)

// secondNameRule implements the Zweitname (second-name) gate: a compound
// surname split between name and name2 on one side must reconcile with
// the concatenated form on the other side. Inputs are expected already
// lower-cased and trimmed (NormalizedRecord fields satisfy this).
func secondNameRule(nameA, name2A, nameB, name2B string) bool {
	switch {
	case name2A == "" && name2B == "":
		return true
	case name2A != "" && name2B != "":
		return name2A == name2B
	case name2A != "" && name2B == "":
		return strings.HasSuffix(nameB, name2A)
	default: // name2A == "" && name2B != ""
		return strings.HasSuffix(nameA, name2B)
	}
}

var (
	yearPattern     = regexp.MustCompile(`\d{4}`)
	jahrgangPattern = regexp.MustCompile(`^\d+(\.0+)?$`)
)

// extractYear returns the first 4-digit substring found in s, or 0 if
// none exists.
func extractYear(s string) int {
	match := yearPattern.FindString(s)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}

// parseJahrgang parses jahrgang as an integer via a decimal-float
// intermediate, tolerating trailing ".0" noise the source column
// sometimes carries. Any other shape, or a non-zero fractional part,
// yields ok=false (absent).
func parseJahrgang(s string) (year int, ok bool) {
	s = strings.TrimSpace(s)
	if !jahrgangPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	year = int(f)
	if f != float64(year) {
		return 0, false
	}
	return year, true
}

// effectiveYear returns the year used by the date rule for one side: the
// 4-digit year embedded in geburtstag if present, else the parsed
// jahrgang, else absent.
func effectiveYear(geburtstag, jahrgang string) (year int, ok bool) {
	if y := extractYear(geburtstag); y != 0 {
		return y, true
	}
	return parseJahrgang(jahrgang)
}

// dateRule implements the birth-date/birth-year gate. An ambiguous
// half-specified date (effective year present on only one side) is
// treated as a conflict, not a wildcard.
func dateRule(geburtstagA, jahrgangA, geburtstagB, jahrgangB string) bool {
	yearA, okA := effectiveYear(geburtstagA, jahrgangA)
	yearB, okB := effectiveYear(geburtstagB, jahrgangB)

	switch {
	case okA && okB:
		return yearA == yearB
	case !okA && !okB:
		return true
	default:
		return false
	}
}
