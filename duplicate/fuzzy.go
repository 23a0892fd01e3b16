package duplicate

import "unicode/utf8"

// Ratio returns a character-level similarity of a and b in [0,1], a
// Levenshtein-derived quick ratio: one minus the edit distance scaled by
// the rune length of the longer string. Two empty strings are considered
// identical (ratio 1); one empty and one non-empty are maximally
// dissimilar (ratio 0).
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dist := levenshtein(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	ratio := 1.0 - float64(dist)/float64(maxLen)
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}

// levenshtein computes the classic edit distance between two strings at
// rune granularity, using a two-row dynamic-programming table.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// ComparisonResult is the output of comparing four normalized name
// tokens under both the natural and swapped orderings.
type ComparisonResult struct {
	Normal     float64
	Swapped    float64
	Best       float64
	IsSwapped  bool
	VornameSim float64 // s(v_a, v_b) under the winning ordering
	NameSim    float64 // s(n_a, n_b) under the winning ordering
}

// CompareNames runs the fuzzy comparator over four normalized strings.
// If any of the four is empty, the result's Best is 0 (the empty-field
// gate from §4.4).
func CompareNames(vornameA, nameA, vornameB, nameB string) ComparisonResult {
	if vornameA == "" || nameA == "" || vornameB == "" || nameB == "" {
		return ComparisonResult{}
	}

	vornameNormal := Ratio(vornameA, vornameB)
	nameNormal := Ratio(nameA, nameB)
	normal := (vornameNormal + nameNormal) / 2

	vornameSwapped := Ratio(vornameA, nameB)
	nameSwapped := Ratio(nameA, vornameB)
	swapped := (vornameSwapped + nameSwapped) / 2

	if swapped > normal {
		return ComparisonResult{
			Normal: normal, Swapped: swapped, Best: swapped, IsSwapped: true,
			VornameSim: vornameSwapped, NameSim: nameSwapped,
		}
	}
	return ComparisonResult{
		Normal: normal, Swapped: swapped, Best: normal, IsSwapped: false,
		VornameSim: vornameNormal, NameSim: nameNormal,
	}
}
