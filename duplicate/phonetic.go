package duplicate

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/claudiolutz/dublettenbereinigung/normalize"
)

// codeCache memoizes Cologne(token) for tokens already seen in this
// process. Name tokens repeat heavily across a large corpus (shared
// given names, common surnames), so caching pays for itself well before
// the bound is ever reached.
var codeCache, _ = lru.New[string, string](4096)

// Cologne computes the Kölner Phonetik (Cologne Phonetic) code of a
// single name token. Empty or whitespace-only input yields the empty
// code. Two tokens with equal codes are considered phonetically similar.
//
// The token is run through normalize.Name first, so umlaut and eszett
// folding happens exactly once, upstream of phonetic coding, the same
// way every other component normalizes before comparing.
func Cologne(token string) string {
	token = normalize.Name(token)
	if token == "" {
		return ""
	}

	if cached, ok := codeCache.Get(token); ok {
		return cached
	}

	code := encodeCologne(token)
	codeCache.Add(token, code)
	return code
}

// vowelCode is the digit assigned to a/e/i/j/o/u/y and retained only
// when it is the very first code of the token.
const vowelCode = 0

// encodeCologne implements the Kölner Phonetik letter-coding rules over
// an already lower-cased, umlaut-folded token (normalize.Name has
// already expanded umlauts to ue/ae/oe and ß to ss, so only plain ASCII
// letters reach this function).
func encodeCologne(s string) string {
	digits := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case 'a', 'e', 'i', 'j', 'o', 'u', 'y':
			digits = append(digits, '0'+vowelCode)
		case 'h':
			// silent, contributes nothing
		case 'b':
			digits = append(digits, '1')
		case 'p':
			if i+1 < len(s) && s[i+1] == 'h' {
				digits = append(digits, '3')
			} else {
				digits = append(digits, '1')
			}
		case 'd', 't':
			if i+1 < len(s) && isOneOf(s[i+1], "csz") {
				digits = append(digits, '8')
			} else {
				digits = append(digits, '2')
			}
		case 'f', 'v', 'w':
			digits = append(digits, '3')
		case 'g', 'k', 'q':
			digits = append(digits, '4')
		case 'c':
			digits = append(digits, byte('0'+codeForC(s, i)))
		case 'x':
			if i > 0 && isOneOf(s[i-1], "ckq") {
				digits = append(digits, '8')
			} else {
				digits = append(digits, '4', '8')
			}
		case 'l':
			digits = append(digits, '5')
		case 'm', 'n':
			digits = append(digits, '6')
		case 'r':
			digits = append(digits, '7')
		case 's', 'z':
			digits = append(digits, '8')
		default:
			// non-letter survivor (stray digit/punctuation); contributes
			// no code, matching the treatment of 'h'.
		}
	}

	if len(digits) == 0 {
		return ""
	}

	return dedupeCode(digits)
}

// codeForC resolves the context-sensitive code for the letter 'c': 4
// at the start of a word before a/h/k/l/o/q/r/u/x, 8 after s/z, 4 before
// a/h/k/o/q/u/x elsewhere, 8 otherwise.
func codeForC(s string, i int) int {
	if i == 0 {
		if i+1 < len(s) && isOneOf(s[i+1], "ahkloqrux") {
			return 4
		}
		return 8
	}
	if s[i-1] == 's' || s[i-1] == 'z' {
		return 8
	}
	if i+1 < len(s) && isOneOf(s[i+1], "ahkoqux") {
		return 4
	}
	return 8
}

func isOneOf(b byte, set string) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}

// dedupeCode collapses adjacent identical digits, then drops every
// remaining '0' (vowel) digit except when it is the first digit of the
// code, per the Kölner Phonetik deduplication rule.
func dedupeCode(digits []byte) string {
	collapsed := make([]byte, 0, len(digits))
	collapsed = append(collapsed, digits[0])
	for i := 1; i < len(digits); i++ {
		if digits[i] != collapsed[len(collapsed)-1] {
			collapsed = append(collapsed, digits[i])
		}
	}

	out := make([]byte, 0, len(collapsed))
	out = append(out, collapsed[0])
	for i := 1; i < len(collapsed); i++ {
		if collapsed[i] != '0' {
			out = append(out, collapsed[i])
		}
	}

	return string(out)
}
