package duplicate

import (
	"fmt"
	"testing"

	"github.com/claudiolutz/dublettenbereinigung/record"
)

func set(rows ...record.Record) *record.Set {
	return &record.Set{Rows: rows}
}

func findPair(matches []Match, a, b int) *Match {
	for i := range matches {
		if matches[i].RecordA == a && matches[i].RecordB == b {
			return &matches[i]
		}
	}
	return nil
}

// S1 — exact identical pair yields exact_normal above 90.
func TestScenarioExactIdentical(t *testing.T) {
	s := set(
		record.Record{Vorname: "Hans", Name: "Mueller", Strasse: "Hauptstr. 1", Plz: "80331", Ort: "Muenchen"},
		record.Record{Vorname: "Hans", Name: "Mueller", Strasse: "Hauptstr. 1", Plz: "80331", Ort: "Muenchen"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	m := findPair(result.Matches, 0, 1)
	if m == nil {
		t.Fatalf("expected a match between row 0 and 1, got %+v", result.Matches)
	}
	if m.Kind != ExactNormal {
		t.Errorf("expected ExactNormal, got %v", m.Kind)
	}
	if m.Confidence < 90 || m.Confidence > 100 {
		t.Errorf("expected confidence in [90,100], got %v", m.Confidence)
	}
}

// S2 — exact match with given/family name transposed yields exact_swapped.
func TestScenarioExactSwapped(t *testing.T) {
	s := set(
		record.Record{Vorname: "Anna", Name: "Schmidt", Plz: "10115", Ort: "Berlin"},
		record.Record{Vorname: "Schmidt", Name: "Anna", Plz: "10115", Ort: "Berlin"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	m := findPair(result.Matches, 0, 1)
	if m == nil {
		t.Fatalf("expected a match between row 0 and 1, got %+v", result.Matches)
	}
	if m.Kind != ExactSwapped {
		t.Errorf("expected ExactSwapped, got %v", m.Kind)
	}
	if m.Confidence < 85 || m.Confidence >= 96 {
		t.Errorf("expected confidence in [85,96), got %v", m.Confidence)
	}
}

// S3 — umlaut spelling variants normalize to the same tokens and match exactly.
func TestScenarioUmlautVariant(t *testing.T) {
	s := set(
		record.Record{Vorname: "Jürgen", Name: "Müller", Plz: "50667", Ort: "Köln"},
		record.Record{Vorname: "Juergen", Name: "Mueller", Plz: "50667", Ort: "Koeln"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	m := findPair(result.Matches, 0, 1)
	if m == nil {
		t.Fatalf("expected a match between row 0 and 1, got %+v", result.Matches)
	}
	if m.Kind != ExactNormal {
		t.Errorf("expected ExactNormal after umlaut normalization, got %v", m.Kind)
	}
}

// S4 — a single-character typo in the family name falls to the fuzzy tier.
func TestScenarioFuzzyTypo(t *testing.T) {
	s := set(
		record.Record{Vorname: "Stefan", Name: "Weber", Strasse: "Bahnhofstr. 5", Plz: "70173", Ort: "Stuttgart"},
		record.Record{Vorname: "Stefan", Name: "Webar", Strasse: "Bahnhofstr. 5", Plz: "70173", Ort: "Stuttgart"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	m := findPair(result.Matches, 0, 1)
	if m == nil {
		t.Fatalf("expected a match between row 0 and 1, got %+v", result.Matches)
	}
	if m.Kind != FuzzyNormal {
		t.Errorf("expected FuzzyNormal, got %v", m.Kind)
	}
}

// S5 — an otherwise exact pair with conflicting birth years must be rejected.
func TestScenarioDateConflictReject(t *testing.T) {
	s := set(
		record.Record{Vorname: "Petra", Name: "Fischer", Plz: "20095", Ort: "Hamburg", Jahrgang: "1975"},
		record.Record{Vorname: "Petra", Name: "Fischer", Plz: "20095", Ort: "Hamburg", Jahrgang: "1988"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if m := findPair(result.Matches, 0, 1); m != nil {
		t.Errorf("expected no match when birth years conflict, got %+v", m)
	}
}

// S6 — a compound second name split across two fields must still match a
// concatenated rendering of the same name.
func TestScenarioSecondNameCompoundSplit(t *testing.T) {
	s := set(
		record.Record{Vorname: "Maria", Name: "Schmidt", Name2: "Meyer", Plz: "30159", Ort: "Hannover"},
		record.Record{Vorname: "Maria", Name: "Schmidtmeyer", Plz: "30159", Ort: "Hannover"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if m := findPair(result.Matches, 0, 1); m == nil {
		t.Errorf("expected the split/compound second name pair to match")
	}
}

// P1 — no pair appears more than once across both stages.
func TestInvariantUniquePairs(t *testing.T) {
	s := set(
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
	)
	result, err := NewDetector(DefaultConfig()).FindDuplicates(s)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	seen := make(map[[2]int]bool)
	for _, m := range result.Matches {
		key := [2]int{m.RecordA, m.RecordB}
		if seen[key] {
			t.Errorf("pair %v emitted more than once", key)
		}
		seen[key] = true
	}
}

// Match invariant — RecordA is always strictly less than RecordB.
func TestInvariantOrderedIndices(t *testing.T) {
	s := set(
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
	)
	result, _ := NewDetector(DefaultConfig()).FindDuplicates(s)
	for _, m := range result.Matches {
		if m.RecordA >= m.RecordB {
			t.Errorf("expected RecordA < RecordB, got %d >= %d", m.RecordA, m.RecordB)
		}
	}
}

// P3 — every emitted match clears the confidence threshold.
func TestInvariantConfidenceFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 70
	s := set(
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331"},
		record.Record{Vorname: "Stefan", Name: "Weber"},
		record.Record{Vorname: "Completely", Name: "Different"},
	)
	result, _ := NewDetector(cfg).FindDuplicates(s)
	for _, m := range result.Matches {
		if m.Confidence < cfg.ConfidenceThreshold {
			t.Errorf("match %+v below configured confidence threshold", m)
		}
	}
}

// Confidence range — no emitted confidence exceeds 100.
func TestInvariantConfidenceCeiling(t *testing.T) {
	s := set(
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331", Strasse: "A 1", Ort: "X"},
		record.Record{Vorname: "Hans", Name: "Mueller", Plz: "80331", Strasse: "A 1", Ort: "X"},
	)
	result, _ := NewDetector(DefaultConfig()).FindDuplicates(s)
	for _, m := range result.Matches {
		if m.Confidence > 100 {
			t.Errorf("confidence %v exceeds 100", m.Confidence)
		}
	}
}

// Running the same set through the sequential and parallel paths must
// produce the same matches once sorted, modulo dispatch order.
func TestSequentialParallelAgreement(t *testing.T) {
	rows := make([]record.Record, 0, 30)
	for i := 0; i < 15; i++ {
		plz := fmt.Sprintf("%05d", 20000+i)
		rows = append(rows,
			record.Record{Vorname: "Hans", Name: "Mueller", Plz: plz, Ort: "Muenchen"},
			record.Record{Vorname: "Hans", Name: "Mueller", Plz: plz, Ort: "Muenchen"},
		)
	}
	s := set(rows...)

	seqCfg := DefaultConfig()
	seqCfg.UseParallel = false
	seqResult, err := NewDetector(seqCfg).FindDuplicates(s)
	if err != nil {
		t.Fatalf("sequential FindDuplicates: %v", err)
	}

	parCfg := DefaultConfig()
	parCfg.UseParallel = true
	parResult, err := NewDetector(parCfg).FindDuplicates(s)
	if err != nil {
		t.Fatalf("parallel FindDuplicates: %v", err)
	}

	if len(seqResult.Matches) != len(parResult.Matches) {
		t.Fatalf("sequential found %d matches, parallel found %d", len(seqResult.Matches), len(parResult.Matches))
	}
	for i := range seqResult.Matches {
		if seqResult.Matches[i] != parResult.Matches[i] {
			t.Errorf("match %d differs: sequential=%+v parallel=%+v", i, seqResult.Matches[i], parResult.Matches[i])
		}
	}
}

// A set with fewer than two records produces no matches and no error.
func TestFindDuplicatesEmptySet(t *testing.T) {
	result, err := NewDetector(DefaultConfig()).FindDuplicates(set())
	if err != nil {
		t.Fatalf("FindDuplicates on empty set: %v", err)
	}
	if len(result.Matches) != 0 {
		t.Errorf("expected no matches on empty set, got %d", len(result.Matches))
	}
}
