package exporter

import "github.com/claudiolutz/dublettenbereinigung/record"

// SetRows adapts a record.Set to the Rows interface the CSV writer reads
// from, exposing each row's literal (pre-normalization) field values.
type SetRows struct {
	Set *record.Set
}

// Row returns the literal field values for the record at index.
func (s SetRows) Row(index int) RowFields {
	r := s.Set.Rows[index]
	return RowFields{
		Vorname:    r.Vorname,
		Name:       r.Name,
		Name2:      r.Name2,
		Strasse:    r.Strasse,
		Hausnummer: r.Hausnummer,
		Plz:        r.Plz,
		Ort:        r.Ort,
		Crefo:      r.Crefo,
		Geburtstag: r.Geburtstag,
		Jahrgang:   r.Jahrgang,
	}
}
