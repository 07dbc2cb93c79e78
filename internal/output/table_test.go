package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "shorter than max", input: "abc", maxLen: 10, expected: "abc"},
		{name: "exactly max", input: "abcde", maxLen: 5, expected: "abcde"},
		{name: "truncated with ellipsis", input: "abcdefgh", maxLen: 6, expected: "abc..."},
		{name: "tiny max skips ellipsis", input: "abcdefgh", maxLen: 2, expected: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateString(tt.input, tt.maxLen))
		})
	}
}

func TestRenderTableEmptyRowsPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, testColumns, nil)
	assert.Empty(t, buf.String())
}

func TestRenderTableIncludesHeadersAndCells(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"alice@example.com", "Q2 report"}}
	RenderTable(&buf, testColumns, rows)

	out := buf.String()
	assert.True(t, strings.Contains(out, "From"))
	assert.True(t, strings.Contains(out, "alice@example.com"))
}
