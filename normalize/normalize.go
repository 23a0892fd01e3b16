// Package normalize implements the pure, deterministic, idempotent
// string transforms the rest of the pipeline builds on: name
// normalization (for comparison, blocking, and phonetic seeding), street
// normalization (for blocking), and postal code normalization.
package normalize

import (
	"regexp"
	"strings"
)

// umlautReplacer performs the German-specific umlaut/eszett folding that
// must run before general diacritic folding, so that "müller" and
// "mueller" collapse to the same normalized string.
var umlautReplacer = strings.NewReplacer(
	"ß", "ss",
	"ü", "ue",
	"ä", "ae",
	"ö", "oe",
)

// diacriticFold maps the remaining accented Latin letters this corpus is
// expected to see onto their plain-ASCII equivalents. Unknown diacritics
// pass through unchanged, matching the fixed, non-exhaustive suffix map
// used elsewhere in the component.
var diacriticFold = strings.NewReplacer(
	"à", "a", "á", "a", "â", "a", "ã", "a", "å", "a",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o",
	"ù", "u", "ú", "u", "û", "u",
	"ý", "y", "ÿ", "y",
	"ñ", "n", "ç", "c",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Name normalizes a single name-like field (family name, given name, or
// the Zweitname column) for comparison, blocking, and phonetic seeding.
// It is a total function: Name(Name(x)) == Name(x) for all x.
func Name(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = umlautReplacer.Replace(s)
	s = diacriticFold.Replace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// streetSuffixes maps a closed set of trailing street-type tokens onto a
// single canonical spelling, longest suffix first so "str." is tried
// before the shorter "str". Suffixes not present in the list pass
// through unchanged; "straße" is already folded to "strasse" by the
// umlaut/eszett pass in Name before this list is consulted.
var streetSuffixes = []struct{ suffix, canonical string }{
	{"str.", "strasse"},
	{"str", "strasse"},
}

var (
	trailingHouseNumber = regexp.MustCompile(`\s*\d+[a-z]*\s*$`)
	leadingHouseNumber  = regexp.MustCompile(`^\s*\d+[a-z]*\s*`)
	nonLetter           = regexp.MustCompile(`[^a-z\s]`)
)

// Street normalizes a street field for blocking: name-normalization,
// then stripping of a trailing house number, then suffix
// canonicalization, then stripping of a leading house number, then
// removal of any remaining non-letter characters.
func Street(s string) string {
	s = Name(s)
	if s == "" {
		return ""
	}

	// The house number trails the street suffix in the raw string
	// ("Müllerstr. 12"), so it must be stripped before suffix
	// canonicalization can see the suffix at the end of the string.
	s = trailingHouseNumber.ReplaceAllString(s, "")

	for _, m := range streetSuffixes {
		if strings.HasSuffix(s, m.suffix) {
			s = strings.TrimSuffix(s, m.suffix) + m.canonical
			break
		}
	}

	s = leadingHouseNumber.ReplaceAllString(s, "")
	s = nonLetter.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var nonDigit = regexp.MustCompile(`\D`)

// Plz normalizes a postal code: strips non-digits, left-pads with zeros
// to five digits, and truncates to the first five digits.
func Plz(s string) string {
	digits := nonDigit.ReplaceAllString(s, "")
	if digits == "" {
		return ""
	}
	for len(digits) < 5 {
		digits = "0" + digits
	}
	if len(digits) > 5 {
		digits = digits[:5]
	}
	return digits
}

// Field normalizes an address/place field for equality comparison in the
// business rules and address-ratio calculation: case-folded and
// trimmed, nothing more. The `ort` field in particular is compared this
// way without re-validating it as a postal code, even though the source
// corpus is known to carry malformed postal-code-shaped values in it.
func Field(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
