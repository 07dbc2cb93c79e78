package gmail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

const (
	// pageSize is the list page size requested from the API.
	pageSize = 100

	// defaultConcurrency bounds the per-batch metadata fan-out.
	defaultConcurrency = 8

	// requestsPerSecond is the client-side throttle on outbound calls,
	// kept well under the Gmail per-user quota.
	requestsPerSecond = 10
)

// metadataHeaders are the headers requested for each matched message.
var metadataHeaders = []string{"From", "To", "Subject", "Date"}

// Client adapts *gmailapi.Service to the MailSearchClient interface.
// Outbound calls are rate limited and transient failures are retried
// with exponential backoff.
type Client struct {
	svc         *gmailapi.Service
	user        string
	limiter     *rate.Limiter
	concurrency int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithConcurrency sets the metadata fan-out bound (minimum 1).
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClient wraps a Gmail service for the authenticated user.
func NewClient(svc *gmailapi.Service, opts ...ClientOption) *Client {
	c := &Client{
		svc:         svc,
		user:        "me",
		limiter:     rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search lists message IDs matching the criteria, then resolves each
// message's metadata concurrently (bounded fan-out) and reassembles the
// results in listing order. Criteria.Limit caps the listing.
func (c *Client) Search(ctx context.Context, criteria SearchCriteria) ([]MessageSummary, error) {
	query := BuildQuery(criteria)

	ids, err := c.listMessageIDs(ctx, query, criteria.Limit)
	if err != nil {
		return nil, err
	}

	// Each fetch writes into its own slot, so listing order survives the
	// concurrent fan-out with no locking.
	results := make([]MessageSummary, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			summary, err := c.getMessage(gctx, id)
			if err != nil {
				return err
			}
			results[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// listMessageIDs pages through the message list until the cap is reached
// or the provider runs out of pages.
func (c *Client) listMessageIDs(ctx context.Context, query string, max int) ([]string, error) {
	if max <= 0 {
		max = DefaultBatchLimit
	}

	var ids []string
	pageToken := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		want := pageSize
		if remaining := max - len(ids); remaining < want {
			want = remaining
		}

		var page *gmailapi.ListMessagesResponse
		err := c.retry(ctx, func() error {
			var callErr error
			page, callErr = c.svc.Users.Messages.List(c.user).
				Q(query).
				MaxResults(int64(want)).
				PageToken(pageToken).
				Context(ctx).
				Do()
			return callErr
		})
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}

		for _, m := range page.Messages {
			ids = append(ids, m.Id)
		}

		pageToken = page.NextPageToken
		if pageToken == "" || len(ids) >= max {
			break
		}
	}

	if len(ids) > max {
		ids = ids[:max]
	}
	return ids, nil
}

// getMessage fetches one message's metadata and snippet.
func (c *Client) getMessage(ctx context.Context, id string) (MessageSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return MessageSummary{}, err
	}

	var msg *gmailapi.Message
	err := c.retry(ctx, func() error {
		var callErr error
		msg, callErr = c.svc.Users.Messages.Get(c.user, id).
			Format("metadata").
			MetadataHeaders(metadataHeaders...).
			Context(ctx).
			Do()
		return callErr
	})
	if err != nil {
		return MessageSummary{}, fmt.Errorf("get message %s: %w", id, err)
	}

	return summarize(msg), nil
}

// ListLabels fetches all labels for the authenticated user.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp *gmailapi.ListLabelsResponse
	err := c.retry(ctx, func() error {
		var callErr error
		resp, callErr = c.svc.Users.Labels.List(c.user).Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}

	labels := make([]Label, len(resp.Labels))
	for i, l := range resp.Labels {
		labels[i] = Label{ID: l.Id, Name: l.Name, Type: l.Type}
	}
	return labels, nil
}

// retry runs op, retrying rate-limit and server errors with exponential
// backoff. Other failures are permanent.
func (c *Client) retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if isTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(policy, ctx))
}

// isTransient reports whether an API failure is worth retrying.
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	// Transport-level hiccups arrive as net errors.
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET)
}

// summarize flattens an API message into the result record.
func summarize(msg *gmailapi.Message) MessageSummary {
	summary := MessageSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}
	if msg.Payload == nil {
		return summary
	}
	for _, h := range msg.Payload.Headers {
		switch {
		case strings.EqualFold(h.Name, "From"):
			summary.From = h.Value
		case strings.EqualFold(h.Name, "To"):
			summary.To = h.Value
		case strings.EqualFold(h.Name, "Subject"):
			summary.Subject = h.Value
		case strings.EqualFold(h.Name, "Date"):
			summary.Date = h.Value
		}
	}
	return summary
}

// Compile-time interface compliance check
var _ MailSearchClient = (*Client)(nil)
