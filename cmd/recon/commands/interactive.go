package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/claudiolutz/dublettenbereinigung/cmd/recon/internal"
	"github.com/claudiolutz/dublettenbereinigung/config"
	"github.com/claudiolutz/dublettenbereinigung/duplicate"
	"github.com/claudiolutz/dublettenbereinigung/record"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive [input]",
	Short: "Interactive mode",
	Long:  "Load records once, run detection, then look up individual records and their matches.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInteractive,
}

// interactiveState holds the loaded records and detection result for the
// lifetime of one interactive session.
type interactiveState struct {
	set    *record.Set
	result *duplicate.Result
}

var state *interactiveState

func init() {
	interactiveCmd.Flags().String("table", "records", "Source table name, when input is a SQLite database")
}

func runInteractive(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	table, _ := cmd.Flags().GetString("table")
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
	internal.PrintSuccess("✓ Loaded %d records (%d issues)\n", set.Len(), len(issues.Issues()))

	internal.PrintInfo("ℹ Detecting duplicates...\n")
	matchConfig := &duplicate.Config{
		FuzzyThreshold:      cfg.Matching.FuzzyThreshold,
		ConfidenceThreshold: cfg.Matching.ConfidenceThreshold,
		UseParallel:         cfg.Matching.UseParallel,
		NumWorkers:          cfg.Matching.NumWorkers,
		UsePhoneticBlocking: cfg.Matching.UsePhoneticBlocking,
		MaxBlockSize:        cfg.Matching.MaxBlockSize,
	}
	result, err := duplicate.NewDetector(matchConfig).FindDuplicates(set)
	if err != nil {
		internal.PrintError("✗ Detection failed: %v\n", err)
		return err
	}
	internal.PrintSuccess("✓ Found %d candidate duplicate pair(s)\n\n", len(result.Matches))

	state = &interactiveState{set: set, result: result}

	internal.PrintInfo("Type 'help' for available commands, 'exit' to quit.\n\n")
	startREPL()

	return nil
}

func startREPL() {
	fileInfo, err := os.Stdin.Stat()
	if err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		startSimpleREPL()
		return
	}

	p := prompt.New(
		executor,
		completer,
		prompt.OptionPrefix("recon> "),
		prompt.OptionTitle("Duplicate Detection Interactive Mode"),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
	)
	p.Run()
}

func startSimpleREPL() {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("recon> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		executor(line)
	}
}

func executor(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		return
	}
	parts := strings.Fields(in)
	command := parts[0]
	args := parts[1:]

	switch command {
	case "exit", "quit", "q":
		internal.PrintInfo("Goodbye!\n")
		os.Exit(0)

	case "help", "h":
		printHelp()

	case "stats":
		showStats()

	case "record", "r":
		if len(args) == 0 {
			internal.PrintError("Usage: record <row-index>\n")
			return
		}
		showRecord(args[0])

	case "matches", "m":
		if len(args) == 0 {
			internal.PrintError("Usage: matches <row-index>\n")
			return
		}
		showMatchesFor(args[0])

	case "top":
		n := 10
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil {
				n = v
			}
		}
		showTopMatches(n)

	default:
		internal.PrintError("Unknown command: %s\n", command)
		internal.PrintInfo("Type 'help' for available commands\n")
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "help", Description: "Show help"},
		{Text: "exit", Description: "Exit interactive mode"},
		{Text: "stats", Description: "Show load/detection statistics"},
		{Text: "record", Description: "Show one record by row index"},
		{Text: "matches", Description: "Show matches involving a row index"},
		{Text: "top", Description: "Show the top N matches by confidence"},
	}
	return prompt.FilterHasPrefix(s, d.GetWordBeforeCursor(), true)
}

func printHelp() {
	internal.PrintInfo("\nAvailable commands:\n\n")
	internal.PrintInfo("  help, h                Show this help\n")
	internal.PrintInfo("  exit, quit, q          Exit interactive mode\n")
	internal.PrintInfo("  stats                  Show load/detection statistics\n")
	internal.PrintInfo("  record <i>             Show record at row index i\n")
	internal.PrintInfo("  matches <i>            Show matches involving row index i\n")
	internal.PrintInfo("  top [n]                Show the top n matches by confidence (default 10)\n\n")
}

func showStats() {
	internal.PrintInfo("\nStatistics:\n")
	internal.PrintInfo("  Records: %d\n", state.set.Len())
	internal.PrintInfo("  Candidate matches: %d\n", len(state.result.Matches))
	if state.result.BlockingMetrics != nil {
		internal.PrintInfo("  Blocks: %d\n", state.result.BlockingMetrics.TotalBlocks)
	}
	internal.PrintInfo("\n")
}

func showRecord(arg string) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= state.set.Len() {
		internal.PrintError("Invalid row index: %s\n", arg)
		return
	}
	r := state.set.Rows[idx]
	internal.PrintInfo("\nRecord %d:\n", idx)
	internal.PrintInfo("  Vorname: %s\n", r.Vorname)
	internal.PrintInfo("  Name: %s\n", r.Name)
	internal.PrintInfo("  Name2: %s\n", r.Name2)
	internal.PrintInfo("  Strasse: %s %s\n", r.Strasse, r.Hausnummer)
	internal.PrintInfo("  Plz/Ort: %s %s\n", r.Plz, r.Ort)
	internal.PrintInfo("  Crefo: %s\n", r.Crefo)
	internal.PrintInfo("  Geburtstag/Jahrgang: %s / %s\n\n", r.Geburtstag, r.Jahrgang)
}

func showMatchesFor(arg string) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		internal.PrintError("Invalid row index: %s\n", arg)
		return
	}
	internal.PrintInfo("\nMatches involving row %d:\n", idx)
	found := false
	for _, m := range state.result.Matches {
		if m.RecordA == idx || m.RecordB == idx {
			found = true
			other := m.RecordA
			if m.RecordA == idx {
				other = m.RecordB
			}
			internal.PrintInfo("  row %d  confidence=%.2f  kind=%s\n", other, m.Confidence, m.Kind)
		}
	}
	if !found {
		internal.PrintInfo("  No matches found\n")
	}
	internal.PrintInfo("\n")
}

func showTopMatches(n int) {
	internal.PrintInfo("\nTop %d matches:\n", n)
	count := n
	if count > len(state.result.Matches) {
		count = len(state.result.Matches)
	}
	for i := 0; i < count; i++ {
		m := state.result.Matches[i]
		internal.PrintInfo("  %d <-> %d  confidence=%.2f  kind=%s\n", m.RecordA, m.RecordB, m.Confidence, m.Kind)
	}
	internal.PrintInfo("\n")
}

// GetInteractiveCommand returns the interactive command.
func GetInteractiveCommand() *cobra.Command {
	return interactiveCmd
}
