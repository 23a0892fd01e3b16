// Package exporter turns a detection Result into the long-form CSV
// output and summary statistics consumed downstream (the `recon report`
// command re-aggregates straight from the exported file).
package exporter

import (
	"sort"

	"github.com/claudiolutz/dublettenbereinigung/duplicate"
)

// Exporter writes a detection result to a file or returns it as a string,
// mirroring the shape of this codebase's earlier tree exporters.
type Exporter interface {
	ExportToFile(result *duplicate.Result, rows Rows, filePath string) error
	ExportToString(result *duplicate.Result, rows Rows) (string, error)
}

// Rows is the minimal per-record view the exporter needs to render a
// match: the raw (pre-normalization) field values, addressed by row index.
type Rows interface {
	Row(index int) RowFields
}

// RowFields are the literal source column values for one record, used
// verbatim in the exported CSV (not the normalized comparison view).
type RowFields struct {
	Vorname    string
	Name       string
	Name2      string
	Strasse    string
	Hausnummer string
	Plz        string
	Ort        string
	Crefo      string
	Geburtstag string
	Jahrgang   string
}

// Bucket labels the three confidence bands reported in a Summary.
type Bucket string

const (
	BucketHigh   Bucket = "90-100"
	BucketMedium Bucket = "80-89"
	BucketLow    Bucket = "below-80"
)

// Summary aggregates a Result for reporting: counts per match kind, mean
// confidence, and a three-way confidence-band breakdown.
type Summary struct {
	TotalMatches   int
	ByKind         map[duplicate.MatchKind]int
	ByBucket       map[Bucket]int
	MeanConfidence float64
}

// Summarize computes a Summary over a Result's matches. It does not
// re-sort matches; FindDuplicates already leaves them in descending
// confidence order.
func Summarize(result *duplicate.Result) *Summary {
	s := &Summary{
		ByKind:   make(map[duplicate.MatchKind]int),
		ByBucket: make(map[Bucket]int),
	}
	if result == nil || len(result.Matches) == 0 {
		return s
	}

	s.TotalMatches = len(result.Matches)
	total := 0.0
	for _, m := range result.Matches {
		s.ByKind[m.Kind]++
		s.ByBucket[bucketFor(m.Confidence)]++
		total += m.Confidence
	}
	s.MeanConfidence = total / float64(s.TotalMatches)
	return s
}

func bucketFor(confidence float64) Bucket {
	switch {
	case confidence >= 90:
		return BucketHigh
	case confidence >= 80:
		return BucketMedium
	default:
		return BucketLow
	}
}

// KindCounts returns the per-kind counts sorted by count descending, then
// by kind name, for stable report rendering.
func (s *Summary) KindCounts() []struct {
	Kind  duplicate.MatchKind
	Count int
} {
	out := make([]struct {
		Kind  duplicate.MatchKind
		Count int
	}, 0, len(s.ByKind))
	for k, c := range s.ByKind {
		out = append(out, struct {
			Kind  duplicate.MatchKind
			Count int
		}{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
