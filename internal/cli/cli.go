package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Auth    AuthCmd    `cmd:"" help:"Authentication commands"`
	Labels  LabelsCmd  `cmd:"" help:"Label operations"`
	Emails  EmailsCmd  `cmd:"" help:"Email operations"`
	Config  ConfigCmd  `cmd:"" help:"Configuration commands"`
	Version VersionCmd `cmd:"" help:"Show version information"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
}

// BeforeApply hook runs before any command execution
// It loads config, resolves the output format, and binds dependencies
func (c *CLI) BeforeApply(ctx *kong.Context) error {
	// Load config from XDG path (returns defaults if missing)
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	formatter, err := output.New(c.ResolvedOutput(cfg))
	if err != nil {
		// An unknown format is a user error but not a fatal one: report
		// it and carry on with a formatter that suppresses data output.
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		formatter = output.Discard()
	}

	// Bind dependencies to kong context
	ctx.Bind(cfg)
	ctx.Bind(&FormatterProvider{Formatter: formatter})
	ctx.Bind(&c.Globals)
	ctx.Bind(NewServiceProvider(cfg))

	return nil
}

// AuthCmd holds authentication subcommands
type AuthCmd struct {
	Login  AuthLoginCmd  `cmd:"" help:"Log in to a Google account"`
	Logout AuthLogoutCmd `cmd:"" help:"Log out and remove stored credentials"`
	Status AuthStatusCmd `cmd:"" help:"Show authentication status"`
}

// LabelsCmd holds label subcommands
type LabelsCmd struct {
	List LabelsListCmd `cmd:"" help:"List all labels"`
}

// EmailsCmd holds email subcommands
type EmailsCmd struct {
	Search EmailsSearchCmd `cmd:"" help:"Search messages"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	println("gmail-cli version " + version)
	return nil
}
