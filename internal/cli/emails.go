package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/cliffpyles/gmail-cli/internal/gmail"
	"github.com/cliffpyles/gmail-cli/internal/output"
)

// EmailsSearchCmd searches messages, optionally splitting the date range
// into batches
type EmailsSearchCmd struct {
	Keyword   string `help:"Keyword to match in subject or body"`
	From      string `help:"Sender address"`
	To        string `help:"Recipient address"`
	Label     string `help:"Label name"`
	StartDate string `help:"Start date (YYYY-MM-DD)" name:"start-date"`
	EndDate   string `help:"End date (YYYY-MM-DD)" name:"end-date"`
	Limit     int    `help:"Maximum number of results" short:"l"`
	BatchSize string `help:"Split the date range into batches: a count (\"4\") or a step (\"2 weeks\")" name:"batch-size"`
}

// Run executes the search command
func (cmd *EmailsSearchCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	criteria, err := cmd.criteria()
	if err != nil {
		return err
	}

	spec := gmail.CountSpec(1)
	if cmd.BatchSize != "" {
		spec, err = gmail.ParseBatchSpec(cmd.BatchSize)
		if err != nil {
			return &output.CLIError{
				Message:  fmt.Sprintf("Invalid batch size: %v", err),
				ExitCode: output.ExitUsage,
			}
		}
	}

	ctx := context.Background()

	client, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	results, err := gmail.NewSearcher(client).Search(ctx, criteria, spec)
	if err != nil {
		var rangeErr *gmail.InvalidRangeError
		if errors.As(err, &rangeErr) {
			return &output.CLIError{
				Message:  err.Error(),
				ExitCode: output.ExitUsage,
			}
		}
		return &output.CLIError{
			Message:  fmt.Sprintf("Search failed: %v", err),
			ExitCode: output.ExitAPIError,
		}
	}

	columns := []output.Column{
		{Name: "ID", Key: "ID"},
		{Name: "From", Key: "From", Width: 30},
		{Name: "To", Key: "To", Width: 30},
		{Name: "Subject", Key: "Subject", Width: 40},
		{Name: "Date", Key: "Date"},
		{Name: "Snippet", Key: "Snippet", Width: 50},
	}

	return fp.Formatter.PrintList(results, columns)
}

// criteria builds the search criteria from the command flags.
func (cmd *EmailsSearchCmd) criteria() (gmail.SearchCriteria, error) {
	c := gmail.SearchCriteria{
		Keyword: cmd.Keyword,
		From:    cmd.From,
		To:      cmd.To,
		Label:   cmd.Label,
		Limit:   cmd.Limit,
	}

	if cmd.StartDate != "" {
		start, err := gmail.ParseDate(cmd.StartDate)
		if err != nil {
			return c, &output.CLIError{
				Message:  fmt.Sprintf("Invalid start date %q: expected YYYY-MM-DD", cmd.StartDate),
				ExitCode: output.ExitUsage,
			}
		}
		c.Start = start
	}

	if cmd.EndDate != "" {
		end, err := gmail.ParseDate(cmd.EndDate)
		if err != nil {
			return c, &output.CLIError{
				Message:  fmt.Sprintf("Invalid end date %q: expected YYYY-MM-DD", cmd.EndDate),
				ExitCode: output.ExitUsage,
			}
		}
		c.End = end
	}

	return c, nil
}
