package cli

import (
	"fmt"
	"os"

	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/output"
)

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., client_id, default_output)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	value, err := cfg.Get(cmd.Key)
	if err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Unknown config key: %s", cmd.Key),
			ExitCode: output.ExitNotFound,
		}
	}

	// Print value to stdout
	fmt.Println(value)
	return nil
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	// Validate key exists
	if _, err := cfg.Get(cmd.Key); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Unknown config key: %s", cmd.Key),
			ExitCode: output.ExitUsage,
		}
	}

	// Hint for client_secret
	if cmd.Key == "client_secret" {
		fmt.Fprintf(os.Stderr, "Note: client_secret is stored in the config file in plain text.\n")
	}

	// Set and save
	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to set config: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	fmt.Fprintf(os.Stderr, "Set %s = %s\n", cmd.Key, cmd.Value)
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	// Validate key exists
	if _, err := cfg.Get(cmd.Key); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Unknown config key: %s", cmd.Key),
			ExitCode: output.ExitUsage,
		}
	}

	if err := cfg.Unset(cmd.Key); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to unset config: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	fmt.Fprintf(os.Stderr, "Unset %s\n", cmd.Key)
	return nil
}

// ConfigListConfigCmd implements config list command
type ConfigListConfigCmd struct{}

// Run executes the list command
func (cmd *ConfigListConfigCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	// Build list of config key-value pairs
	type ConfigItem struct {
		Key   string
		Value string
	}

	items := []ConfigItem{
		{Key: "client_id", Value: cfg.ClientID},
		{Key: "client_secret", Value: maskSecret(cfg.ClientSecret)},
		{Key: "default_output", Value: cfg.DefaultOutput},
		{Key: "concurrency", Value: fmt.Sprintf("%d", cfg.Concurrency)},
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
	}

	return fp.Formatter.PrintList(items, cols)
}

// maskSecret masks sensitive values, showing only last 4 characters
func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	path := config.ConfigPath()

	// Print path to stdout
	fmt.Println(path)

	// Print existence hint to stderr
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "(file does not exist yet - will be created on first write)\n")
	} else {
		fmt.Fprintf(os.Stderr, "(file exists)\n")
	}

	return nil
}
