package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudiolutz/dublettenbereinigung/cmd/recon/internal"
	"github.com/claudiolutz/dublettenbereinigung/duplicate"
	"github.com/claudiolutz/dublettenbereinigung/exporter"
)

var reportCmd = &cobra.Command{
	Use:   "report [matches.csv]",
	Short: "Summarize a previously exported match report",
	Long:  "Re-aggregate confidence and match-kind statistics from a CSV file produced by 'match'.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); os.IsNotExist(err) {
		internal.PrintError("✗ File not found: %s\n", path)
		return fmt.Errorf("file not found: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	matches, err := readMatchesFromCSV(f)
	if err != nil {
		internal.PrintError("✗ Failed to read report: %v\n", err)
		return err
	}

	result := &duplicate.Result{Matches: matches}
	summary := exporter.Summarize(result)

	internal.PrintSuccess("✓ Loaded %d reported match(es)\n", summary.TotalMatches)
	printSummary(summary)

	return nil
}

// readMatchesFromCSV reconstructs one duplicate.Match per pair from the
// long-form export (two rows per match, sharing match_id), reading just
// the fields the report needs: row_index, confidence, and match_kind.
func readMatchesFromCSV(r io.Reader) ([]duplicate.Match, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimPrefix(h, "\xef\xbb\xbf")] = i
	}

	type pending struct {
		rowIndex   int
		confidence float64
		kind       duplicate.MatchKind
	}
	byMatchID := make(map[string]pending)
	matches := make([]duplicate.Match, 0)

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		matchID := row[col["match_id"]]
		rowIndex, _ := strconv.Atoi(row[col["row_index"]])
		confidence, _ := strconv.ParseFloat(row[col["confidence"]], 64)
		kind := duplicate.MatchKind(row[col["match_kind"]])

		if first, ok := byMatchID[matchID]; ok {
			a, b := first.rowIndex, rowIndex
			if a > b {
				a, b = b, a
			}
			matches = append(matches, duplicate.Match{
				RecordA: a, RecordB: b, Confidence: confidence, Kind: kind,
			})
			delete(byMatchID, matchID)
			continue
		}
		byMatchID[matchID] = pending{rowIndex: rowIndex, confidence: confidence, kind: kind}
	}

	return matches, nil
}

// GetReportCommand returns the report command.
func GetReportCommand() *cobra.Command {
	return reportCmd
}
