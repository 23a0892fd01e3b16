// Package internal holds the small CLI presentation helpers shared by
// the recon subcommands: colored status lines, a progress bar wrapper,
// and quiet-mode state.
package internal

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

var (
	infoColor    = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	quiet        = false
)

// InitColor enables or disables colored output globally.
func InitColor(enabled bool) {
	color.NoColor = !enabled
}

// SetQuietMode suppresses progress bars and non-essential info lines.
func SetQuietMode(v bool) {
	quiet = v
}

// IsQuietMode reports whether quiet mode is active.
func IsQuietMode() bool {
	return quiet
}

// PrintInfo writes a cyan status line to stdout, suppressed in quiet mode.
func PrintInfo(format string, args ...interface{}) {
	if quiet {
		return
	}
	infoColor.Printf(format, args...)
}

// PrintError writes a red status line to stderr. Never suppressed.
func PrintError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format, args...)
}

// PrintWarning writes a yellow status line to stdout, suppressed in quiet mode.
func PrintWarning(format string, args ...interface{}) {
	if quiet {
		return
	}
	warningColor.Printf(format, args...)
}

// PrintSuccess writes a green status line to stdout, suppressed in quiet mode.
func PrintSuccess(format string, args ...interface{}) {
	if quiet {
		return
	}
	successColor.Printf(format, args...)
}

// ProgressBar wraps progressbar.ProgressBar so callers outside this
// package never import schollz/progressbar directly.
type ProgressBar struct {
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar of the given size and label,
// writing to stderr so it never interleaves with piped stdout output.
func NewProgressBar(max int, description string) *ProgressBar {
	return &ProgressBar{
		bar: progressbar.NewOptions(max,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Set moves the bar to an absolute position.
func (p *ProgressBar) Set(n int) {
	if p == nil {
		return
	}
	_ = p.bar.Set(n)
}

// Add advances the bar by delta.
func (p *ProgressBar) Add(delta int) {
	if p == nil {
		return
	}
	_ = p.bar.Add(delta)
}

// Finish completes the bar.
func (p *ProgressBar) Finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}

// Fprintln is a small helper so command code doesn't need to reach for
// fmt directly just to emit a plain (uncolored) line.
func Fprintln(format string) {
	fmt.Println(format)
}
