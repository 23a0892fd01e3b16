package record

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads a Set from a CSV file, in insertion order. Unknown
// columns are ignored; missing optional columns default to empty
// strings. Rows missing Name or Vorname are still loaded (per the
// input-shape error category) but reported through issues.
func LoadCSV(path string) (*Set, *IssueManager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a Set from an already-open reader, for callers that want
// to source the CSV body from something other than a file (stdin,
// in-memory buffer, decompression pipe).
func ReadCSV(r io.Reader) (*Set, *IssueManager, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, h := range header {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	issues := NewIssueManager()
	set := &Set{Rows: make([]Record, 0)}

	field := func(row []string, name string) string {
		idx, ok := colIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	rowIndex := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			issues.Add(SeverityWarning, fmt.Sprintf("skipped malformed csv row: %v", err), rowIndex)
			continue
		}

		rec := Record{
			Name:       field(row, "name"),
			Vorname:    field(row, "vorname"),
			Name2:      field(row, "name2"),
			Strasse:    field(row, "strasse"),
			Hausnummer: field(row, "hausnummer"),
			Plz:        field(row, "plz"),
			Ort:        field(row, "ort"),
			Crefo:      field(row, "crefo"),
			Geburtstag: field(row, "geburtstag"),
			Jahrgang:   field(row, "jahrgang"),
		}
		if !rec.HasMandatoryFields() {
			issues.Add(SeverityWarning, "record missing mandatory name/vorname field", rowIndex)
		}
		set.Rows = append(set.Rows, rec)
		rowIndex++
	}

	return set, issues, nil
}
