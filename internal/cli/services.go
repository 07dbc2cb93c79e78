package cli

import (
	"context"
	"fmt"
	"sync"

	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/cliffpyles/gmail-cli/internal/auth"
	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/gmail"
	"github.com/cliffpyles/gmail-cli/internal/output"
	"github.com/cliffpyles/gmail-cli/internal/secrets"
)

// ServiceProvider lazily creates and caches the Gmail client.
type ServiceProvider struct {
	cfg *config.Config

	mailOnce sync.Once
	mail     *gmail.Client
	mailErr  error
}

// NewServiceProvider creates a ServiceProvider with the given config.
func NewServiceProvider(cfg *config.Config) *ServiceProvider {
	return &ServiceProvider{cfg: cfg}
}

// Mail returns the Gmail client, creating it on first call.
func (sp *ServiceProvider) Mail(ctx context.Context) (*gmail.Client, error) {
	sp.mailOnce.Do(func() {
		store, err := secrets.NewStore()
		if err != nil {
			sp.mailErr = &output.CLIError{
				ExitCode: output.ExitGeneral,
				Message:  fmt.Sprintf("Failed to initialize secrets store: %v", err),
			}
			return
		}

		tokenCache, err := auth.NewTokenCache(sp.cfg, store)
		if err != nil {
			sp.mailErr = err
			return
		}

		svc, err := gmailapi.NewService(ctx, option.WithTokenSource(tokenCache))
		if err != nil {
			sp.mailErr = &output.CLIError{
				ExitCode: output.ExitAPIError,
				Message:  fmt.Sprintf("Failed to create Gmail client: %v", err),
			}
			return
		}

		var opts []gmail.ClientOption
		if sp.cfg.Concurrency > 0 {
			opts = append(opts, gmail.WithConcurrency(sp.cfg.Concurrency))
		}
		sp.mail = gmail.NewClient(svc, opts...)
	})
	return sp.mail, sp.mailErr
}
