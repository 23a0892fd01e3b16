package duplicate

import (
	"fmt"
	"sort"
)

// BlockingMetrics summarizes how the blocker partitioned a run's records,
// for the --benchmark CLI output and for diagnosing poor recall.
type BlockingMetrics struct {
	TotalRecords int

	TotalBlocks       int
	SingletonsDropped int
	SplitBlocks       int

	AddressedRecords         int // blocked by plz and/or strasse
	PhoneticFallbackRecords  int // blocked by the phonetic fallback key
	NoAddressRecords         int // fell into the catch-all "no_address" block

	LargestBlockSize int
	AverageBlockSize float64

	// Warnings
	HasGiantBlock      bool
	GiantBlockWarning  string
}

// computeBlockingMetrics derives BlockingMetrics from the blocks BuildBlocks
// produced.
func computeBlockingMetrics(
	totalRecords int,
	blocks []Block,
	singletonsDropped, splitBlocks int,
	addressedCount, phoneticFallbackCount, noAddressCount int,
) *BlockingMetrics {
	m := &BlockingMetrics{
		TotalRecords:            totalRecords,
		TotalBlocks:             len(blocks),
		SingletonsDropped:       singletonsDropped,
		SplitBlocks:             splitBlocks,
		AddressedRecords:        addressedCount,
		PhoneticFallbackRecords: phoneticFallbackCount,
		NoAddressRecords:        noAddressCount,
	}

	if len(blocks) == 0 {
		return m
	}

	sizes := make([]int, len(blocks))
	total := 0
	for i, b := range blocks {
		sizes[i] = len(b.Indices)
		total += len(b.Indices)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	m.LargestBlockSize = sizes[0]
	m.AverageBlockSize = float64(total) / float64(len(blocks))

	if splitBlocks > 0 {
		m.HasGiantBlock = true
		m.GiantBlockWarning = fmt.Sprintf(
			"%d block(s) exceeded the configured max block size and were split into chunks; "+
				"recall may be reduced at chunk boundaries.", splitBlocks)
	}

	return m
}

// String renders a human-readable summary, in the style of this
// package's other metrics types.
func (m *BlockingMetrics) String() string {
	s := "Blocking Metrics:\n"
	s += fmt.Sprintf("  Total Records: %d\n", m.TotalRecords)
	s += fmt.Sprintf("  Total Blocks: %d\n", m.TotalBlocks)
	s += fmt.Sprintf("  Singleton Blocks Dropped: %d\n", m.SingletonsDropped)
	s += fmt.Sprintf("  Blocks Split (oversize): %d\n", m.SplitBlocks)
	s += fmt.Sprintf("  Addressed Records (plz/strasse): %d\n", m.AddressedRecords)
	s += fmt.Sprintf("  Phonetic Fallback Records: %d\n", m.PhoneticFallbackRecords)
	s += fmt.Sprintf("  No-Address Records: %d\n", m.NoAddressRecords)
	s += fmt.Sprintf("  Largest Block Size: %d\n", m.LargestBlockSize)
	s += fmt.Sprintf("  Average Block Size: %.2f\n", m.AverageBlockSize)
	if m.GiantBlockWarning != "" {
		s += fmt.Sprintf("\n  ⚠ WARNING: %s\n", m.GiantBlockWarning)
	}
	return s
}

// GetWarnings returns human-readable warnings about the blocking pass.
func (m *BlockingMetrics) GetWarnings() []string {
	warnings := make([]string, 0)
	if m.GiantBlockWarning != "" {
		warnings = append(warnings, m.GiantBlockWarning)
	}
	if m.TotalRecords > 0 && m.NoAddressRecords > m.TotalRecords/2 {
		warnings = append(warnings, fmt.Sprintf(
			"Over half of records (%d of %d) have neither a postal code nor a street and phonetic "+
				"blocking is disabled; consider enabling use_phonetic_blocking.",
			m.NoAddressRecords, m.TotalRecords))
	}
	return warnings
}
