package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/cliffpyles/gmail-cli/internal/cli"
	"github.com/cliffpyles/gmail-cli/internal/output"
)

var (
	version = "dev"
)

func main() {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("gmail-cli"),
		kong.Description("Search and inspect a Gmail mailbox from the command line"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Register shell completion before parsing so completion requests
	// short-circuit normal execution
	kongplete.Complete(parser,
		kongplete.WithPredictor("file", complete.PredictFiles("*")),
	)

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	// Run command with bound dependencies
	if err := ctx.Run(); err != nil {
		// Handle error with proper exit code
		if cliErr, ok := err.(*output.CLIError); ok {
			formatter, _ := output.New("text")
			formatter.PrintError(err)
			if cliErr.Hint != "" {
				formatter.PrintHint(cliErr.Hint)
			}
			os.Exit(cliErr.ExitCode)
		}
		// Unknown error
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(output.ExitGeneral)
	}
}
