package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/oauth2"

	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/output"
	"github.com/cliffpyles/gmail-cli/internal/secrets"
)

// refreshTokenKey is the secrets-store key holding the refresh token.
const refreshTokenKey = "refresh_token"

// TokenCache implements oauth2.TokenSource with file-based caching and
// file locking. The refresh token lives in the secrets store; short-lived
// access tokens are cached under the XDG cache directory. The lock
// prevents concurrent invocations from stampeding the refresh endpoint.
type TokenCache struct {
	cachePath string
	lockPath  string
	store     secrets.Store
	oauthCfg  *oauth2.Config
}

// cachedToken is the token structure stored in the cache file.
type cachedToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry"`
}

// NewTokenCache creates a token cache for the given configuration.
func NewTokenCache(cfg *config.Config, store secrets.Store) (*TokenCache, error) {
	oauthCfg, err := newOAuth2Config(cfg, "")
	if err != nil {
		return nil, err
	}

	cachePath := filepath.Join(config.CacheDir(), "token.json")
	if err := os.MkdirAll(filepath.Dir(cachePath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &TokenCache{
		cachePath: cachePath,
		lockPath:  cachePath + ".lock",
		store:     store,
		oauthCfg:  oauthCfg,
	}, nil
}

// Token implements oauth2.TokenSource.
// Returns a valid access token, refreshing if necessary.
func (tc *TokenCache) Token() (*oauth2.Token, error) {
	unlock, err := tc.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	// A cached token within the 5-minute proactive refresh window is
	// refreshed early so it never expires mid-search.
	if cached, err := tc.readCachedToken(); err == nil {
		if time.Until(cached.Expiry) > 5*time.Minute {
			return &oauth2.Token{
				AccessToken: cached.AccessToken,
				TokenType:   cached.TokenType,
				Expiry:      cached.Expiry,
			}, nil
		}
	}

	token, err := tc.refreshToken()
	if err != nil {
		return nil, err
	}

	if err := tc.writeCachedToken(token); err != nil {
		// Non-fatal - the token is still usable
		fmt.Fprintf(os.Stderr, "Warning: failed to cache token: %v\n", err)
	}

	return token, nil
}

// lock acquires the cross-process file lock around token operations.
func (tc *TokenCache) lock() (func(), error) {
	fileLock := flock.New(tc.lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire lock: timeout")
	}
	return func() { _ = fileLock.Unlock() }, nil
}

// readCachedToken reads the cached access token from disk.
func (tc *TokenCache) readCachedToken() (*cachedToken, error) {
	data, err := os.ReadFile(tc.cachePath)
	if err != nil {
		return nil, err
	}

	var token cachedToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}

	return &token, nil
}

// writeCachedToken writes the access token to the cache file.
func (tc *TokenCache) writeCachedToken(token *oauth2.Token) error {
	cached := cachedToken{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(tc.cachePath, data, 0600)
}

// refreshToken exchanges the stored refresh token for a new access token.
func (tc *TokenCache) refreshToken() (*oauth2.Token, error) {
	refreshToken, err := tc.store.Get(refreshTokenKey)
	if err != nil {
		if err == secrets.ErrNotFound {
			return nil, &output.CLIError{
				Message:  "No refresh token found. Run: gmail-cli auth login",
				ExitCode: output.ExitAuth,
			}
		}
		return nil, fmt.Errorf("failed to read refresh token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	src := tc.oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		if retrieveErr, ok := err.(*oauth2.RetrieveError); ok && retrieveErr.ErrorCode == "invalid_grant" {
			return nil, &output.CLIError{
				Message:  "Refresh token expired or revoked. Run: gmail-cli auth login",
				ExitCode: output.ExitAuth,
			}
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	// Google occasionally rotates the refresh token
	if token.RefreshToken != "" && token.RefreshToken != refreshToken {
		if err := tc.store.Set(refreshTokenKey, token.RefreshToken); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to update refresh token: %v\n", err)
		}
	}

	return token, nil
}

// SaveInitialTokens stores the tokens from a successful login.
// Called after InteractiveLogin or ManualLogin completes.
func (tc *TokenCache) SaveInitialTokens(token *oauth2.Token) error {
	unlock, err := tc.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if token.RefreshToken == "" {
		return fmt.Errorf("login response carried no refresh token; revoke the app's access and log in again")
	}

	if err := tc.store.Set(refreshTokenKey, token.RefreshToken); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	if err := tc.writeCachedToken(token); err != nil {
		return fmt.Errorf("failed to cache access token: %w", err)
	}

	return nil
}

// ClearTokens removes all stored tokens (used by logout).
func (tc *TokenCache) ClearTokens() error {
	unlock, err := tc.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := tc.store.Delete(refreshTokenKey); err != nil && err != secrets.ErrNotFound {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	if err := os.Remove(tc.cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token cache: %w", err)
	}

	return nil
}

// HasRefreshToken reports whether a refresh token is stored.
func (tc *TokenCache) HasRefreshToken() bool {
	_, err := tc.store.Get(refreshTokenKey)
	return err == nil
}

// Compile-time interface compliance check
var _ oauth2.TokenSource = (*TokenCache)(nil)
