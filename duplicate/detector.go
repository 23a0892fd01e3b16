package duplicate

import (
	"sort"
	"time"

	"github.com/claudiolutz/dublettenbereinigung/record"
)

// MatchKind classifies how a Match was produced.
type MatchKind string

const (
	ExactNormal             MatchKind = "exact_normal"
	ExactSwapped            MatchKind = "exact_swapped"
	FuzzyNormal             MatchKind = "fuzzy_normal"
	FuzzySwapped            MatchKind = "fuzzy_swapped"
	PhoneticAssistedNormal  MatchKind = "phonetic_assisted_normal"
	PhoneticAssistedSwapped MatchKind = "phonetic_assisted_swapped"
)

// MatchDetails carries the per-kind diagnostics behind a Match's
// confidence score.
type MatchDetails struct {
	AddressRatio float64
	Best         float64
	IsSwapped    bool
	Phonetic     bool
}

// Match is an accepted candidate pair, identified by row index with
// RecordA < RecordB.
type Match struct {
	RecordA, RecordB int
	Confidence       float64
	Kind             MatchKind
	Details          MatchDetails
}

// Config holds the tunable options described in §6.3.
type Config struct {
	FuzzyThreshold      float64
	ConfidenceThreshold float64
	UseParallel         bool
	NumWorkers          int
	UsePhoneticBlocking bool
	MaxBlockSize        int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		FuzzyThreshold:      0.70,
		ConfidenceThreshold: 70.0,
		UseParallel:         true,
		NumWorkers:          0, // 0 = hardware parallelism - 1, resolved by the orchestrator
		UsePhoneticBlocking: true,
		MaxBlockSize:        10000,
	}
}

// Result holds the outcome of one detection run.
type Result struct {
	Matches          []Match
	TotalComparisons int
	ProcessingTime   time.Duration
	Metrics          *PerformanceMetrics
	BlockingMetrics  *BlockingMetrics
}

// Detector runs the full linkage pipeline (blocking, two-stage matching,
// parallel dispatch) over a record.Set.
type Detector struct {
	config *Config
}

// NewDetector creates a Detector with the given configuration, falling
// back to DefaultConfig when cfg is nil.
func NewDetector(cfg *Config) *Detector {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Detector{config: cfg}
}

// FindDuplicates runs C1 (via BuildView) through C7 over set and returns
// the aggregated, sorted match list.
func (d *Detector) FindDuplicates(set *record.Set) (*Result, error) {
	startTime := time.Now()

	if set.Len() < 2 {
		return &Result{Matches: []Match{}, ProcessingTime: time.Since(startTime)}, nil
	}

	view := BuildView(set)

	blockStart := time.Now()
	blocks, blockingMetrics := BuildBlocks(view, blockingConfig{
		UsePhoneticBlocking: d.config.UsePhoneticBlocking,
		MaxBlockSize:        d.config.MaxBlockSize,
	})
	blockTime := time.Since(blockStart)

	compareStart := time.Now()
	var (
		matches          []Match
		comparisons      int
		numWorkers       int
		err              error
	)
	if d.config.UseParallel && len(blocks) >= 10 {
		numWorkers = resolveNumWorkers(d.config.NumWorkers, len(blocks))
		matches, comparisons, err = runParallel(blocks, view, d.config, numWorkers)
	} else {
		numWorkers = 1
		matches, comparisons, err = runSequential(blocks, view, d.config)
	}
	if err != nil {
		return nil, err
	}
	compareTime := time.Since(compareStart)

	sortStart := time.Now()
	sortMatches(matches)
	sortTime := time.Since(sortStart)

	metrics := calculateMetrics(startTime, blockTime, compareTime, sortTime, comparisons, numWorkers)

	return &Result{
		Matches:          matches,
		TotalComparisons: comparisons,
		ProcessingTime:   time.Since(startTime),
		Metrics:          metrics,
		BlockingMetrics:  blockingMetrics,
	}, nil
}

// processBlock runs the two-stage match engine (C6) over one block.
// Stage 1 (exact) marks indices consumed so stage 2 (fuzzy, with
// phonetic fallback) skips them. Returns the matches and the number of
// pairs evaluated across both stages.
func processBlock(view []NormalizedRecord, block Block, cfg *Config) ([]Match, int) {
	indices := block.Indices
	matches := make([]Match, 0)
	consumed := make(map[int]bool, len(indices))
	comparisons := 0

	// Stage 1 — exact.
	for ii := 0; ii < len(indices); ii++ {
		for jj := ii + 1; jj < len(indices); jj++ {
			a, b := indices[ii], indices[jj]
			comparisons++

			ra, rb := view[a], view[b]
			if !secondNameRule(ra.Name, ra.Name2, rb.Name, rb.Name2) {
				continue
			}
			if !dateRule(ra.Geburtstag, ra.Jahrgang, rb.Geburtstag, rb.Jahrgang) {
				continue
			}
			if ra.Vorname == "" || ra.Name == "" || rb.Vorname == "" || rb.Name == "" {
				continue
			}

			nameA, nameB := canonicalName(ra.Name, ra.Name2), canonicalName(rb.Name, rb.Name2)
			exactNormal := ra.Vorname == rb.Vorname && nameA == nameB
			exactSwapped := ra.Vorname == nameB && nameA == rb.Vorname
			if !exactNormal && !exactSwapped {
				continue
			}

			ratio := addressRatio(ra, rb)
			var kind MatchKind
			var confidence float64
			if exactNormal {
				kind = ExactNormal
				confidence = 90 + 10*ratio
			} else {
				kind = ExactSwapped
				confidence = 85 + 10*ratio
			}

			consumed[a] = true
			consumed[b] = true
			matches = append(matches, Match{
				RecordA: a, RecordB: b, Confidence: confidence, Kind: kind,
				Details: MatchDetails{AddressRatio: ratio, Best: 1.0, IsSwapped: exactSwapped},
			})
		}
	}

	// Stage 2 — fuzzy, with phonetic fallback.
	for ii := 0; ii < len(indices); ii++ {
		for jj := ii + 1; jj < len(indices); jj++ {
			a, b := indices[ii], indices[jj]
			if consumed[a] || consumed[b] {
				continue
			}
			comparisons++

			ra, rb := view[a], view[b]
			if !secondNameRule(ra.Name, ra.Name2, rb.Name, rb.Name2) {
				continue
			}
			if !dateRule(ra.Geburtstag, ra.Jahrgang, rb.Geburtstag, rb.Jahrgang) {
				continue
			}

			nameA, nameB := canonicalName(ra.Name, ra.Name2), canonicalName(rb.Name, rb.Name2)
			cmp := CompareNames(ra.Vorname, nameA, rb.Vorname, nameB)

			var (
				accept    bool
				phonetic  bool
				best      = cmp.Best
				isSwapped = cmp.IsSwapped
			)

			switch {
			case cmp.Best >= cfg.FuzzyThreshold:
				accept = true
			case cmp.Best >= 0.60:
				phoneticNormal := Cologne(ra.Vorname) != "" && Cologne(ra.Vorname) == Cologne(rb.Vorname) &&
					Cologne(nameA) != "" && Cologne(nameA) == Cologne(nameB)
				phoneticSwapped := Cologne(ra.Vorname) != "" && Cologne(ra.Vorname) == Cologne(nameB) &&
					Cologne(nameA) != "" && Cologne(nameA) == Cologne(rb.Vorname)
				if phoneticNormal || phoneticSwapped {
					accept = true
					phonetic = true
					best = 0.72
					isSwapped = phoneticSwapped && !phoneticNormal
				}
			}
			if !accept {
				continue
			}

			ratio := addressRatio(ra, rb)
			var kind MatchKind
			var confidence float64
			switch {
			case phonetic && isSwapped:
				kind = PhoneticAssistedSwapped
				confidence = 70 + 10*ratio
			case phonetic:
				kind = PhoneticAssistedNormal
				confidence = 72 + 10*ratio
			case isSwapped:
				kind = FuzzySwapped
				confidence = 50*best + 30*ratio - 5
			default:
				kind = FuzzyNormal
				confidence = 50*best + 30*ratio
			}
			if confidence > 95 {
				confidence = 95
			}
			if confidence < cfg.ConfidenceThreshold {
				continue
			}

			matches = append(matches, Match{
				RecordA: a, RecordB: b, Confidence: confidence, Kind: kind,
				Details: MatchDetails{AddressRatio: ratio, Best: best, IsSwapped: isSwapped, Phonetic: phonetic},
			})
		}
	}

	return matches, comparisons
}

// canonicalName concatenates a split Zweitname onto the family name so a
// compound surname reconciles with its concatenated rendering once
// secondNameRule has already confirmed the two sides agree on the split.
func canonicalName(name, name2 string) string {
	if name2 == "" {
		return name
	}
	return name + name2
}

// addressRatio computes the §4.6.1(4) address-match ratio: the fraction
// of {strasse, hausnummer, plz, ort} that are both present and equal,
// among those present on both sides. A field not present on both sides
// is not considered at all (neither in the numerator nor denominator).
func addressRatio(a, b NormalizedRecord) float64 {
	considered, matched := 0, 0
	check := func(x, y string) {
		if x == "" || y == "" {
			return
		}
		considered++
		if x == y {
			matched++
		}
	}
	check(a.StrasseRaw, b.StrasseRaw)
	check(a.Hausnummer, b.Hausnummer)
	check(a.Plz, b.Plz)
	check(a.Ort, b.Ort)

	if considered == 0 {
		return 0
	}
	return float64(matched) / float64(considered)
}

// sortMatches restores determinism after parallel dispatch by sorting
// the merged match list in descending confidence order, breaking ties by
// row index so the order is stable regardless of which worker produced
// which match.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		if matches[i].RecordA != matches[j].RecordA {
			return matches[i].RecordA < matches[j].RecordA
		}
		return matches[i].RecordB < matches[j].RecordB
	})
}
