package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claudiolutz/dublettenbereinigung/cmd/recon/commands"
	"github.com/claudiolutz/dublettenbereinigung/cmd/recon/internal"
	"github.com/claudiolutz/dublettenbereinigung/config"
)

var (
	version    = "1.0.0"
	configPath string
	quiet      bool
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:     "recon",
	Short:   "Duplicate detection for person/address records",
	Long:    "A command-line tool for detecting likely duplicate person/address records in German-language business data.",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
			cfg = config.Default()
		}

		if quiet {
			internal.SetQuietMode(true)
			cfg.Output.Progress = false
		}
		if noColor {
			cfg.Output.Color = false
		}

		internal.InitColor(cfg.Output.Color)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (suppress progress bars)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(commands.GetMatchCommand())
	rootCmd.AddCommand(commands.GetReportCommand())
	rootCmd.AddCommand(commands.GetInteractiveCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError("Error: %v\n", err)
		os.Exit(1)
	}
}
