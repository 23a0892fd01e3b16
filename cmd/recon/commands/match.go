package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claudiolutz/dublettenbereinigung/cmd/recon/internal"
	"github.com/claudiolutz/dublettenbereinigung/config"
	"github.com/claudiolutz/dublettenbereinigung/duplicate"
	"github.com/claudiolutz/dublettenbereinigung/exporter"
	"github.com/claudiolutz/dublettenbereinigung/record"
)

var matchCmd = &cobra.Command{
	Use:   "match [input]",
	Short: "Find duplicate person/address records",
	Long:  "Load person/address records from CSV or SQLite, detect likely duplicates, and export a match report.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringP("output", "o", "", "Output CSV file (required)")
	matchCmd.MarkFlagRequired("output")
	matchCmd.Flags().String("table", "records", "Source table name, when input is a SQLite database")
	matchCmd.Flags().Float64("fuzzy-threshold", 0, "Override the fuzzy match threshold (0-1)")
	matchCmd.Flags().Float64("confidence-threshold", 0, "Override the minimum confidence to report (0-100)")
	matchCmd.Flags().Bool("no-parallel", false, "Disable parallel block dispatch")
	matchCmd.Flags().Bool("no-phonetic-blocking", false, "Disable the phonetic blocking fallback")
	matchCmd.Flags().Bool("benchmark", false, "Print detailed blocking and timing metrics")
	matchCmd.Flags().String("spill-dir", "", "Round-trip loaded records through an on-disk store in this directory before matching (the records are read back into memory)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	outputFile, _ := cmd.Flags().GetString("output")
	table, _ := cmd.Flags().GetString("table")
	fuzzyOverride, _ := cmd.Flags().GetFloat64("fuzzy-threshold")
	confidenceOverride, _ := cmd.Flags().GetFloat64("confidence-threshold")
	noParallel, _ := cmd.Flags().GetBool("no-parallel")
	noPhoneticBlocking, _ := cmd.Flags().GetBool("no-phonetic-blocking")
	benchmark, _ := cmd.Flags().GetBool("benchmark")
	spillDir, _ := cmd.Flags().GetString("spill-dir")
	configPath, _ := cmd.Flags().GetString("config")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	internal.InitColor(cfg.Output.Color && !noColor)

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		internal.PrintError("✗ File not found: %s\n", inputFile)
		return fmt.Errorf("file not found: %s", inputFile)
	}

	internal.PrintInfo("ℹ Loading: %s\n", inputFile)
	set, issues, err := loadInput(inputFile, table)
	if err != nil {
		internal.PrintError("✗ Load failed: %v\n", err)
		return err
	}
	internal.PrintSuccess("✓ Loaded %d records\n", set.Len())
	for _, issue := range issues.Issues() {
		internal.PrintWarning("  %s\n", issue.Error())
	}

	if spillDir != "" {
		set, err = spillAndReload(spillDir, set)
		if err != nil {
			internal.PrintError("✗ Spill store failed: %v\n", err)
			return err
		}
		internal.PrintInfo("ℹ Spilled %d records through %s\n", set.Len(), spillDir)
	}

	matchConfig := &duplicate.Config{
		FuzzyThreshold:      cfg.Matching.FuzzyThreshold,
		ConfidenceThreshold: cfg.Matching.ConfidenceThreshold,
		UseParallel:         cfg.Matching.UseParallel && !noParallel,
		NumWorkers:          cfg.Matching.NumWorkers,
		UsePhoneticBlocking: cfg.Matching.UsePhoneticBlocking && !noPhoneticBlocking,
		MaxBlockSize:        cfg.Matching.MaxBlockSize,
	}
	if fuzzyOverride > 0 {
		matchConfig.FuzzyThreshold = fuzzyOverride
	}
	if confidenceOverride > 0 {
		matchConfig.ConfidenceThreshold = confidenceOverride
	}

	var progressBar *internal.ProgressBar
	if cfg.Output.Progress && !internal.IsQuietMode() {
		progressBar = internal.NewProgressBar(100, "Matching...")
		defer progressBar.Finish()
	}

	internal.PrintInfo("ℹ Detecting duplicates...\n")
	progressBar.Set(20)
	result, err := duplicate.NewDetector(matchConfig).FindDuplicates(set)
	if err != nil {
		internal.PrintError("✗ Detection failed: %v\n", err)
		return err
	}
	progressBar.Set(80)

	rows := exporter.SetRows{Set: set}
	if err := exporter.NewCSVExporter().ExportToFile(result, rows, outputFile); err != nil {
		internal.PrintError("✗ Export failed: %v\n", err)
		return err
	}
	progressBar.Set(100)

	internal.PrintSuccess("✓ Found %d candidate duplicate pair(s)\n", len(result.Matches))
	internal.PrintInfo("  Written to: %s\n", outputFile)

	summary := exporter.Summarize(result)
	printSummary(summary)

	if benchmark {
		comparisonConfig := *matchConfig
		comparisonConfig.UseParallel = !matchConfig.UseParallel
		internal.PrintInfo("\nℹ Benchmark: re-running with the opposite dispatch mode for comparison...\n")
		comparisonResult, err := duplicate.NewDetector(&comparisonConfig).FindDuplicates(set)
		if err != nil {
			internal.PrintError("✗ Benchmark re-run failed: %v\n", err)
			return err
		}
		parallelResult, sequentialResult := result, comparisonResult
		if !matchConfig.UseParallel {
			parallelResult, sequentialResult = comparisonResult, result
		}
		printBenchmark(parallelResult, sequentialResult)
	}

	return nil
}

// loadInput dispatches to the CSV or SQLite loader based on the input
// file's extension.
func loadInput(path, table string) (*record.Set, *record.IssueManager, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return record.LoadSQLite(path, table)
	default:
		return record.LoadCSV(path)
	}
}

// spillAndReload round-trips set through an on-disk store at dir and
// returns the reloaded copy, so large runs never need to keep the
// resident and spilled copies in memory at the same time for longer
// than the round-trip itself.
func spillAndReload(dir string, set *record.Set) (*record.Set, error) {
	store, err := record.OpenSpillStore(dir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := store.Spill(set); err != nil {
		return nil, err
	}
	return store.Load(set.Len())
}

func printSummary(s *exporter.Summary) {
	internal.PrintInfo("\nConfidence distribution:\n")
	internal.PrintInfo("  90-100: %d\n", s.ByBucket[exporter.BucketHigh])
	internal.PrintInfo("  80-89:  %d\n", s.ByBucket[exporter.BucketMedium])
	internal.PrintInfo("  below 80: %d\n", s.ByBucket[exporter.BucketLow])
	internal.PrintInfo("\nBy match kind:\n")
	for _, kc := range s.KindCounts() {
		internal.PrintInfo("  %-26s %d\n", kc.Kind, kc.Count)
	}
	if s.TotalMatches > 0 {
		internal.PrintInfo("\nMean confidence: %.2f\n", s.MeanConfidence)
	}
}

// printBenchmark reports comparative timings between a parallel and a
// sequential run over the same input, the way run_optimized_analysis.py
// and performance_comparison.py compared the two strategies.
func printBenchmark(parallel, sequential *duplicate.Result) {
	internal.PrintInfo("\n%s\n", parallel.BlockingMetrics.String())
	for _, w := range parallel.BlockingMetrics.GetWarnings() {
		internal.PrintWarning("⚠ %s\n", w)
	}

	internal.PrintInfo("\nPerformance (parallel vs. sequential):\n")
	internal.PrintInfo("  Total comparisons:   %d  |  %d\n", parallel.Metrics.TotalComparisons, sequential.Metrics.TotalComparisons)
	internal.PrintInfo("  Blocking time:       %s  |  %s\n", parallel.Metrics.IndexBuildTime, sequential.Metrics.IndexBuildTime)
	internal.PrintInfo("  Comparison time:     %s  |  %s\n", parallel.Metrics.ComparisonTime, sequential.Metrics.ComparisonTime)
	internal.PrintInfo("  Sort time:           %s  |  %s\n", parallel.Metrics.SortTime, sequential.Metrics.SortTime)
	internal.PrintInfo("  Total time:          %s  |  %s\n", parallel.Metrics.ProcessingTime, sequential.Metrics.ProcessingTime)
	internal.PrintInfo("  Workers:             %d  |  %d\n", parallel.Metrics.ParallelWorkers, sequential.Metrics.ParallelWorkers)
	internal.PrintInfo("  Throughput:          %.1f  |  %.1f comparisons/sec\n", parallel.Metrics.Throughput, sequential.Metrics.Throughput)

	if sequential.Metrics.ProcessingTime > 0 {
		speedup := float64(sequential.Metrics.ProcessingTime) / float64(parallel.Metrics.ProcessingTime)
		internal.PrintInfo("  Speedup (seq/parallel): %.2fx\n", speedup)
	}
}

// GetMatchCommand returns the match command.
func GetMatchCommand() *cobra.Command {
	return matchCmd
}
