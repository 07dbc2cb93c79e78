package cli

import (
	"context"
	"fmt"

	"github.com/cliffpyles/gmail-cli/internal/output"
)

// LabelsListCmd lists all Gmail labels
type LabelsListCmd struct{}

// Run executes the list labels command
func (cmd *LabelsListCmd) Run(sp *ServiceProvider, fp *FormatterProvider) error {
	ctx := context.Background()

	client, err := sp.Mail(ctx)
	if err != nil {
		return err
	}

	labels, err := client.ListLabels(ctx)
	if err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to fetch labels: %v", err),
			ExitCode: output.ExitAPIError,
		}
	}

	// Define columns for list output
	columns := []output.Column{
		{Name: "Name", Key: "Name"},
		{Name: "Type", Key: "Type"},
		{Name: "ID", Key: "ID"},
	}

	return fp.Formatter.PrintList(labels, columns)
}
