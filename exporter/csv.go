package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/claudiolutz/dublettenbereinigung/duplicate"
)

// utf8BOM precedes the CSV body so spreadsheet tools that sniff encoding
// (Excel in particular) open the umlaut-bearing columns correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{
	"match_id", "position", "confidence", "match_kind", "row_index",
	"vorname", "name", "name2", "strasse", "hausnummer", "plz", "ort",
	"crefo", "geburtstag", "jahrgang",
}

// CSVExporter renders a detection Result as the long-form CSV described
// in this package's documentation: each match contributes two rows,
// tagged A and B, sharing a synthetic match_id.
type CSVExporter struct{}

// NewCSVExporter creates a CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ExportToFile writes the CSV to filePath, prefixed with a UTF-8 BOM.
func (ce *CSVExporter) ExportToFile(result *duplicate.Result, rows Rows, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()
	return ce.write(writer, result, rows)
}

// ExportToString renders the CSV (including the BOM) as a string.
func (ce *CSVExporter) ExportToString(result *duplicate.Result, rows Rows) (string, error) {
	var sb strings.Builder
	sb.Write(utf8BOM)

	writer := csv.NewWriter(&sb)
	if err := ce.write(writer, result, rows); err != nil {
		return "", err
	}
	writer.Flush()
	return sb.String(), nil
}

func (ce *CSVExporter) write(writer *csv.Writer, result *duplicate.Result, rows Rows) error {
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, m := range result.Matches {
		matchID := matchIDFor(m, rows.Row(m.RecordA), rows.Row(m.RecordB))

		if err := writer.Write(matchRow(matchID, "A", m, m.RecordA, rows.Row(m.RecordA))); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
		if err := writer.Write(matchRow(matchID, "B", m, m.RecordB, rows.Row(m.RecordB))); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// matchIDFor derives a match_id from the two Crefo values when both
// records carry one (the shared Crefo itself when they are equal), and
// otherwise from the two row indices, as a name-based (SHA-1) UUID so the
// same pair always gets the same id.
func matchIDFor(m duplicate.Match, a, b RowFields) string {
	if a.Crefo != "" && b.Crefo != "" {
		if a.Crefo == b.Crefo {
			return a.Crefo
		}
		return a.Crefo + "_" + b.Crefo
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d_%d", m.RecordA, m.RecordB))).String()
}

func matchRow(matchID, position string, m duplicate.Match, rowIndex int, fields RowFields) []string {
	return []string{
		matchID,
		position,
		strconv.FormatFloat(m.Confidence, 'f', 2, 64),
		string(m.Kind),
		strconv.Itoa(rowIndex),
		fields.Vorname,
		fields.Name,
		fields.Name2,
		fields.Strasse,
		fields.Hausnummer,
		fields.Plz,
		fields.Ort,
		fields.Crefo,
		fields.Geburtstag,
		fields.Jahrgang,
	}
}
