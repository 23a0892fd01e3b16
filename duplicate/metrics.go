package duplicate

import (
	"time"
)

// PerformanceMetrics holds performance statistics for one detection run.
type PerformanceMetrics struct {
	TotalComparisons int
	ProcessingTime   time.Duration
	IndexBuildTime   time.Duration // time spent in BuildBlocks
	ComparisonTime   time.Duration // time spent running blocks through the match engine
	SortTime         time.Duration
	ParallelWorkers  int
	Throughput       float64 // comparisons per second
}

// calculateMetrics derives PerformanceMetrics from the timing data a run
// collected.
func calculateMetrics(
	startTime time.Time,
	indexBuildTime time.Duration,
	comparisonTime time.Duration,
	sortTime time.Duration,
	totalComparisons int,
	numWorkers int) *PerformanceMetrics {

	totalTime := time.Since(startTime)
	throughput := 0.0
	if totalTime > 0 {
		throughput = float64(totalComparisons) / totalTime.Seconds()
	}

	return &PerformanceMetrics{
		TotalComparisons: totalComparisons,
		ProcessingTime:   totalTime,
		IndexBuildTime:   indexBuildTime,
		ComparisonTime:   comparisonTime,
		SortTime:         sortTime,
		ParallelWorkers:  numWorkers,
		Throughput:       throughput,
	}
}
