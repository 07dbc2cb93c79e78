package auth

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/output"
	"github.com/cliffpyles/gmail-cli/pkg/browser"
)

// newOAuth2Config creates an oauth2.Config for Google authentication.
func newOAuth2Config(cfg *config.Config, redirectURL string) (*oauth2.Config, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &output.CLIError{
			Message: "Client ID and Client Secret required.\n\n" +
				"Run: gmail-cli config set client_id YOUR_CLIENT_ID\n" +
				"Run: gmail-cli config set client_secret YOUR_CLIENT_SECRET\n\n" +
				"Create OAuth credentials at: https://console.cloud.google.com/apis/credentials",
			ExitCode: output.ExitConfigError,
		}
	}

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       DefaultScopes,
	}, nil
}

// generateState generates a random state parameter for OAuth2 CSRF protection.
func generateState() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// authCodeURL builds the authorization URL. access_type=offline and
// prompt=consent ensure Google issues a refresh token.
func authCodeURL(cfg *oauth2.Config, state string) string {
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// InteractiveLogin performs an OAuth2 login flow using the browser.
// Opens the authorization URL in the default browser and starts a local
// loopback server to receive the callback.
func InteractiveLogin(ctx context.Context, cfg *config.Config) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	resultChan, callbackURL, shutdown := startCallbackServer(ctx, 0)
	defer shutdown()

	oauthCfg, err := newOAuth2Config(cfg, callbackURL)
	if err != nil {
		return nil, err
	}

	state := generateState()
	authURL := authCodeURL(oauthCfg, state)

	// Print the URL as a fallback in case the browser doesn't open
	fmt.Fprintf(os.Stderr, "Opening browser for authentication...\n")
	fmt.Fprintf(os.Stderr, "If the browser doesn't open, visit this URL:\n%s\n\n", authURL)

	if err := browser.Open(authURL); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
		fmt.Fprintf(os.Stderr, "Please visit the URL above manually.\n")
	}

	var result callbackResult
	select {
	case result = <-resultChan:
	case <-ctx.Done():
		return nil, fmt.Errorf("authentication timeout (5 minutes)")
	}

	if result.Error != "" {
		return nil, fmt.Errorf("authentication failed: %s", result.Error)
	}

	// Validate state parameter (CSRF protection)
	if result.State != state {
		return nil, fmt.Errorf("state mismatch (possible CSRF attack)")
	}

	token, err := oauthCfg.Exchange(ctx, result.Code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	return token, nil
}

// ManualLogin performs an OAuth2 login flow by printing the auth URL and
// accepting a pasted redirect. Useful where the browser can't be opened
// automatically (SSH, headless, etc).
func ManualLogin(ctx context.Context, cfg *config.Config) (*oauth2.Token, error) {
	// The user pastes the redirect back, so a fixed loopback URL is fine
	// even though nothing listens on it.
	oauthCfg, err := newOAuth2Config(cfg, "http://localhost:8080/callback")
	if err != nil {
		return nil, err
	}

	state := generateState()
	authURL := authCodeURL(oauthCfg, state)

	fmt.Fprintf(os.Stderr, "\n=== Manual OAuth2 Flow ===\n\n")
	fmt.Fprintf(os.Stderr, "1. Visit this URL in your browser:\n\n")
	fmt.Fprintf(os.Stderr, "%s\n\n", authURL)
	fmt.Fprintf(os.Stderr, "2. After authorizing, you'll be redirected to a page that won't load.\n")
	fmt.Fprintf(os.Stderr, "3. Copy the FULL URL from your browser's address bar and paste it here.\n\n")
	fmt.Fprintf(os.Stderr, "Paste the redirect URL: ")

	reader := bufio.NewReader(os.Stdin)
	redirectedURL, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	parsedURL, err := url.Parse(strings.TrimSpace(redirectedURL))
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	code := parsedURL.Query().Get("code")
	returnedState := parsedURL.Query().Get("state")

	if code == "" {
		if errorMsg := parsedURL.Query().Get("error"); errorMsg != "" {
			return nil, fmt.Errorf("authorization failed: %s", errorMsg)
		}
		return nil, fmt.Errorf("no authorization code found in URL")
	}

	if returnedState != state {
		return nil, fmt.Errorf("state mismatch (possible CSRF attack)")
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\nAuthentication successful!\n")
	return token, nil
}
