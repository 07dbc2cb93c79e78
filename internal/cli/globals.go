package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/cliffpyles/gmail-cli/internal/config"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output  string `help:"Output format (json, jsonl, csv, text, table, markdown, auto)" default:"auto" short:"o" env:"GMAIL_CLI_OUTPUT"`
	Verbose bool   `help:"Verbose output" short:"v" env:"GMAIL_CLI_VERBOSE"`
}

// ResolvedOutput returns the effective output format.
// Precedence: --output flag > config default_output > "auto".
// "auto" detects TTY: if stdout is a TTY -> table, else -> text
func (g *Globals) ResolvedOutput(cfg *config.Config) string {
	format := g.Output
	if format == "auto" && cfg.DefaultOutput != "" {
		format = cfg.DefaultOutput
	}
	if format != "auto" {
		return format
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "table"
	}

	return "text"
}
