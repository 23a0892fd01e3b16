package exporter

import (
	"strings"
	"testing"

	"github.com/claudiolutz/dublettenbereinigung/duplicate"
	"github.com/claudiolutz/dublettenbereinigung/record"
)

func TestCSVExportToStringHeaderAndBOM(t *testing.T) {
	rows := SetRows{Set: &record.Set{Rows: []record.Record{
		{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
	}}}
	result := &duplicate.Result{Matches: []duplicate.Match{
		{RecordA: 0, RecordB: 1, Confidence: 97.5, Kind: duplicate.ExactNormal},
	}}

	out, err := NewCSVExporter().ExportToString(result, rows)
	if err != nil {
		t.Fatalf("ExportToString: %v", err)
	}
	if !strings.HasPrefix(out, string(utf8BOM)) {
		t.Errorf("expected output to start with a UTF-8 BOM")
	}
	body := strings.TrimPrefix(out, string(utf8BOM))
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) != 3 { // header + 2 rows (A and B)
		t.Fatalf("expected 3 lines (header + 2 rows), got %d: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "match_id,position,confidence,match_kind,row_index") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestCSVExportSharesMatchIDAcrossRows(t *testing.T) {
	rows := SetRows{Set: &record.Set{Rows: []record.Record{
		{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
	}}}
	result := &duplicate.Result{Matches: []duplicate.Match{
		{RecordA: 0, RecordB: 1, Confidence: 97.5, Kind: duplicate.ExactNormal},
	}}

	out, err := NewCSVExporter().ExportToString(result, rows)
	if err != nil {
		t.Fatalf("ExportToString: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, string(utf8BOM))), "\n")
	rowA := strings.Split(lines[1], ",")
	rowB := strings.Split(lines[2], ",")
	if rowA[0] == "" || rowA[0] != rowB[0] {
		t.Errorf("expected both rows to share a non-empty match_id, got %q and %q", rowA[0], rowB[0])
	}
	if rowA[1] != "A" || rowB[1] != "B" {
		t.Errorf("expected position tags A then B, got %q then %q", rowA[1], rowB[1])
	}
}

func TestCSVExportUsesSharedCrefoAsMatchID(t *testing.T) {
	rows := SetRows{Set: &record.Set{Rows: []record.Record{
		{Vorname: "Hans", Name: "Mueller", Crefo: "1234567"},
		{Vorname: "Hans", Name: "Mueller", Crefo: "1234567"},
	}}}
	result := &duplicate.Result{Matches: []duplicate.Match{
		{RecordA: 0, RecordB: 1, Confidence: 97.5, Kind: duplicate.ExactNormal},
	}}

	out, err := NewCSVExporter().ExportToString(result, rows)
	if err != nil {
		t.Fatalf("ExportToString: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, string(utf8BOM))), "\n")
	rowA := strings.Split(lines[1], ",")
	if rowA[0] != "1234567" {
		t.Errorf("expected match_id to reuse the shared crefo, got %q", rowA[0])
	}
}

func TestSummarize(t *testing.T) {
	result := &duplicate.Result{Matches: []duplicate.Match{
		{RecordA: 0, RecordB: 1, Confidence: 95, Kind: duplicate.ExactNormal},
		{RecordA: 2, RecordB: 3, Confidence: 85, Kind: duplicate.FuzzyNormal},
		{RecordA: 4, RecordB: 5, Confidence: 72, Kind: duplicate.PhoneticAssistedNormal},
	}}
	s := Summarize(result)
	if s.TotalMatches != 3 {
		t.Errorf("expected 3 total matches, got %d", s.TotalMatches)
	}
	if s.ByBucket[BucketHigh] != 1 || s.ByBucket[BucketMedium] != 1 || s.ByBucket[BucketLow] != 1 {
		t.Errorf("expected one match per bucket, got %+v", s.ByBucket)
	}
	wantMean := (95.0 + 85.0 + 72.0) / 3.0
	if s.MeanConfidence != wantMean {
		t.Errorf("expected mean confidence %v, got %v", wantMean, s.MeanConfidence)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(&duplicate.Result{})
	if s.TotalMatches != 0 || s.MeanConfidence != 0 {
		t.Errorf("expected zero-value summary for empty result, got %+v", s)
	}
}
