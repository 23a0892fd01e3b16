package record

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// LoadSQLite reads a Set from a SQLite table, standing in for the
// original pipeline's relational-view extraction (the source view the
// duplicate checker once read through pyodbc/SQLAlchemy). Rows are
// ordered by rowid so row index assignment is stable across runs against
// the same file.
func LoadSQLite(path, table string) (*Set, *IssueManager, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	query := fmt.Sprintf(
		`SELECT Name, Vorname, Name2, Strasse, HausNummer, Plz, Ort, Crefo, Geburtstag, Jahrgang FROM %s ORDER BY rowid`,
		quoteIdentifier(table),
	)
	rows, err := db.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	issues := NewIssueManager()
	set := &Set{Rows: make([]Record, 0)}

	rowIndex := 0
	for rows.Next() {
		var (
			name, vorname, name2, strasse, hausnummer string
			plz, ort, crefo, geburtstag, jahrgang      string
		)
		if err := rows.Scan(&name, &vorname, &name2, &strasse, &hausnummer,
			&plz, &ort, &crefo, &geburtstag, &jahrgang); err != nil {
			issues.Add(SeverityWarning, fmt.Sprintf("skipped malformed sqlite row: %v", err), rowIndex)
			continue
		}
		rec := Record{
			Name: name, Vorname: vorname, Name2: name2,
			Strasse: strasse, Hausnummer: hausnummer,
			Plz: plz, Ort: ort, Crefo: crefo,
			Geburtstag: geburtstag, Jahrgang: jahrgang,
		}
		if !rec.HasMandatoryFields() {
			issues.Add(SeverityWarning, "record missing mandatory name/vorname field", rowIndex)
		}
		set.Rows = append(set.Rows, rec)
		rowIndex++
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return set, issues, nil
}

// quoteIdentifier quotes a SQLite identifier using double quotes, doubling
// any embedded double quote per SQLite's identifier-escaping convention
// (distinct from Go's backslash-style %q string quoting).
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
