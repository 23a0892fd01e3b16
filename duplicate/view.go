package duplicate

import (
	"github.com/claudiolutz/dublettenbereinigung/normalize"
	"github.com/claudiolutz/dublettenbereinigung/record"
)

// NormalizedRecord is the derived, read-only view of a Record the rest
// of the pipeline operates on. It is computed once per run; nothing
// downstream mutates it, and no reference to it escapes a block task.
type NormalizedRecord struct {
	Vorname    string
	Name       string
	Name2      string
	Strasse    string // fully normalized (suffix canonicalized, house number stripped) — blocking key input
	StrasseRaw string // case-folded, trimmed only — address-ratio comparison input
	Hausnummer string
	Plz        string
	Ort        string
	Crefo      string
	Geburtstag string
	Jahrgang   string
}

// BuildView normalizes every record in set exactly once, in row-index
// order, producing the derived view every other component reads from.
func BuildView(set *record.Set) []NormalizedRecord {
	view := make([]NormalizedRecord, len(set.Rows))
	for i, r := range set.Rows {
		view[i] = NormalizedRecord{
			Vorname:    normalize.Name(r.Vorname),
			Name:       normalize.Name(r.Name),
			Name2:      normalize.Name(r.Name2),
			Strasse:    normalize.Street(r.Strasse),
			StrasseRaw: normalize.Field(r.Strasse),
			Hausnummer: normalize.Field(r.Hausnummer),
			Plz:        normalize.Plz(r.Plz),
			Ort:        normalize.Field(r.Ort),
			Crefo:      r.Crefo,
			Geburtstag: r.Geburtstag,
			Jahrgang:   r.Jahrgang,
		}
	}
	return view
}
