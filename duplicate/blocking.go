package duplicate

import (
	"fmt"
	"sort"
)

// Block is a non-empty set of row indices sharing a common blocking key.
// Every input record belongs to exactly one block before singleton
// dropping and oversize splitting are applied.
type Block struct {
	Key     string
	Indices []int
}

// blockingConfig is the subset of Config the blocker consults.
type blockingConfig struct {
	UsePhoneticBlocking bool
	MaxBlockSize        int
}

// BuildBlocks partitions view into blocks per §4.5: plz+street when both
// present, a plz-only or street-only fallback when just one is present,
// a phonetic fallback keyed on the Cologne codes of vorname/name when
// neither address field is present and phonetic blocking is enabled, and
// a single catch-all "no_address" key otherwise. Blocks of size 1 are
// dropped; blocks larger than MaxBlockSize are split into contiguous,
// non-overlapping chunks.
func BuildBlocks(view []NormalizedRecord, cfg blockingConfig) ([]Block, *BlockingMetrics) {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	addressedCount := 0
	phoneticFallbackCount := 0
	noAddressCount := 0

	for idx, rec := range view {
		key := blockingKey(rec, cfg.UsePhoneticBlocking)
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], idx)

		switch {
		case rec.Plz != "" || rec.Strasse != "":
			addressedCount++
		case cfg.UsePhoneticBlocking:
			phoneticFallbackCount++
		default:
			noAddressCount++
		}
	}

	maxSize := cfg.MaxBlockSize
	if maxSize <= 0 {
		maxSize = 10000
	}

	blocks := make([]Block, 0, len(order))
	singletonsDropped := 0
	splitBlocks := 0

	for _, key := range order {
		indices := grouped[key]
		if len(indices) < 2 {
			singletonsDropped++
			continue
		}
		if len(indices) <= maxSize {
			blocks = append(blocks, Block{Key: key, Indices: indices})
			continue
		}

		splitBlocks++
		for start := 0; start < len(indices); start += maxSize {
			end := start + maxSize
			if end > len(indices) {
				end = len(indices)
			}
			chunkKey := fmt.Sprintf("%s#chunk%d", key, start/maxSize)
			blocks = append(blocks, Block{Key: chunkKey, Indices: indices[start:end]})
		}
	}

	metrics := computeBlockingMetrics(len(view), blocks, singletonsDropped, splitBlocks,
		addressedCount, phoneticFallbackCount, noAddressCount)

	return blocks, metrics
}

// blockingKey computes the blocking key for a single normalized record.
func blockingKey(rec NormalizedRecord, usePhoneticBlocking bool) string {
	switch {
	case rec.Plz != "" && rec.Strasse != "":
		return rec.Plz + "_" + rec.Strasse
	case rec.Plz != "":
		return "plz_only_" + rec.Plz
	case rec.Strasse != "":
		return "street_only_" + rec.Strasse
	case usePhoneticBlocking:
		return "phon_" + Cologne(rec.Vorname) + "_" + Cologne(rec.Name)
	default:
		return "no_address"
	}
}

// sortBlocksByKey sorts blocks by key for deterministic iteration order
// across parallel and sequential runs (P5). Map iteration order in Go is
// randomized, so callers that need a stable processing order should call
// this before dispatching.
func sortBlocksByKey(blocks []Block) {
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Key < blocks[j].Key
	})
}
