package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliffpyles/gmail-cli/internal/config"
	"github.com/cliffpyles/gmail-cli/internal/output"
)

func TestSearchCriteriaFromFlags(t *testing.T) {
	cmd := &EmailsSearchCmd{
		Keyword:   "invoice",
		From:      "a@x.com",
		To:        "b@x.com",
		Label:     "work",
		StartDate: "2023-06-01",
		EndDate:   "2023-06-30",
		Limit:     5,
	}

	c, err := cmd.criteria()
	require.NoError(t, err)

	assert.Equal(t, "invoice", c.Keyword)
	assert.Equal(t, "a@x.com", c.From)
	assert.Equal(t, "b@x.com", c.To)
	assert.Equal(t, "work", c.Label)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), c.Start)
	assert.Equal(t, time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC), c.End)
	assert.Equal(t, 5, c.Limit)
	assert.True(t, c.HasRange())
}

func TestSearchCriteriaOmittedFlags(t *testing.T) {
	c, err := (&EmailsSearchCmd{}).criteria()
	require.NoError(t, err)

	assert.Equal(t, "", c.Keyword)
	assert.True(t, c.Start.IsZero())
	assert.True(t, c.End.IsZero())
	assert.False(t, c.HasRange())
	assert.Equal(t, 0, c.Limit)
}

func TestSearchCriteriaBadDates(t *testing.T) {
	tests := []struct {
		name string
		cmd  EmailsSearchCmd
	}{
		{"bad start date", EmailsSearchCmd{StartDate: "06/01/2023"}},
		{"bad end date", EmailsSearchCmd{EndDate: "not-a-date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.criteria()
			require.Error(t, err)

			cliErr, ok := err.(*output.CLIError)
			require.True(t, ok)
			assert.Equal(t, output.ExitUsage, cliErr.ExitCode)
		})
	}
}

func TestResolvedOutput(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		cfgValue string
		want     string
	}{
		{"explicit flag wins", "csv", "json", "csv"},
		{"config default fills auto", "auto", "markdown", "markdown"},
		// Test stdout is not a TTY, so auto falls back to text.
		{"auto without config", "auto", "", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Globals{Output: tt.flag}
			cfg := &config.Config{DefaultOutput: tt.cfgValue}
			assert.Equal(t, tt.want, g.ResolvedOutput(cfg))
		})
	}
}
