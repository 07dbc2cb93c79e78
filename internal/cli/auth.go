package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"

	"github.com/cliffpyles/gmail-cli/internal/auth"
	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/output"
	"github.com/cliffpyles/gmail-cli/internal/secrets"
)

// AuthLoginCmd implements the auth login command
type AuthLoginCmd struct {
	Manual bool `help:"Manual paste mode (no browser)" short:"m"`
}

// Run executes the login command
func (cmd *AuthLoginCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	store, err := secrets.NewStore()
	if err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to initialize secrets store: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	tokenCache, err := auth.NewTokenCache(cfg, store)
	if err != nil {
		return err
	}

	// Execute login flow
	ctx := context.Background()
	var token *oauth2.Token

	if cmd.Manual {
		token, err = auth.ManualLogin(ctx, cfg)
	} else {
		token, err = auth.InteractiveLogin(ctx, cfg)
	}

	if err != nil {
		if cliErr, ok := err.(*output.CLIError); ok {
			return cliErr
		}
		return &output.CLIError{
			Message:  fmt.Sprintf("Login failed: %v", err),
			ExitCode: output.ExitAuth,
		}
	}

	// Save tokens
	if err := tokenCache.SaveInitialTokens(token); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to save tokens: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	// Output success
	fmt.Fprintf(os.Stderr, "Authenticated successfully\n")
	fmt.Fprintf(os.Stderr, "Token expires: %s\n", token.Expiry.Format(time.RFC3339))

	// Detect storage backend
	storageType := "keyring"
	if secrets.IsWSL() || secrets.IsHeadless() {
		storageType = "encrypted file"
	}
	fmt.Fprintf(os.Stderr, "Credentials stored in %s\n", storageType)

	return nil
}

// AuthLogoutCmd implements the auth logout command
type AuthLogoutCmd struct{}

// Run executes the logout command
func (cmd *AuthLogoutCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	store, err := secrets.NewStore()
	if err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to initialize secrets store: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	tokenCache, err := auth.NewTokenCache(cfg, store)
	if err != nil {
		return err
	}

	if err := tokenCache.ClearTokens(); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to clear tokens: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	fmt.Fprintf(os.Stderr, "Logged out\n")
	fmt.Fprintf(os.Stderr, "Credentials removed\n")
	return nil
}

// AuthStatusCmd implements the auth status command
type AuthStatusCmd struct {
	Check bool `help:"Validate the stored token against the OAuth endpoint" short:"c"`
}

// Run executes the status command
func (cmd *AuthStatusCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	store, err := secrets.NewStore()
	if err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to initialize secrets store: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	tokenCache, err := auth.NewTokenCache(cfg, store)
	if err != nil {
		return err
	}

	if !tokenCache.HasRefreshToken() {
		fmt.Fprintf(os.Stderr, "Not authenticated\n")
		fmt.Fprintf(os.Stderr, "Run 'gmail-cli auth login' to authenticate\n")
		return &output.CLIError{
			Message:  "No stored credentials",
			ExitCode: output.ExitAuth,
		}
	}

	type statusInfo struct {
		Authenticated bool   `json:"authenticated"`
		Valid         string `json:"valid"`
		Expiry        string `json:"expiry"`
	}

	status := statusInfo{Authenticated: true, Valid: "unknown", Expiry: "n/a"}

	if cmd.Check {
		token, err := tokenCache.Token()
		if err != nil {
			status.Valid = "no"
		} else {
			status.Valid = "yes"
			status.Expiry = token.Expiry.Format(time.RFC3339)
		}
	}

	cols := []output.Column{
		{Name: "Authenticated", Key: "Authenticated"},
	}
	if cmd.Check {
		cols = append(cols,
			output.Column{Name: "Valid", Key: "Valid"},
			output.Column{Name: "Token Expiry", Key: "Expiry"},
		)
	}

	fp.Formatter.PrintList([]statusInfo{status}, cols)
	return nil
}
