package gmail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		expected string
	}{
		{
			name:     "all fields absent",
			criteria: SearchCriteria{},
			expected: "",
		},
		{
			name:     "keyword searches body and subject",
			criteria: SearchCriteria{Keyword: "invoice"},
			expected: "(invoice in:body OR invoice in:subject)",
		},
		{
			name:     "from filter",
			criteria: SearchCriteria{From: "alice@example.com"},
			expected: "from:alice@example.com",
		},
		{
			name:     "to filter",
			criteria: SearchCriteria{To: "bob@example.com"},
			expected: "to:bob@example.com",
		},
		{
			name:     "label filter",
			criteria: SearchCriteria{Label: "receipts"},
			expected: "label:receipts",
		},
		{
			name: "date range",
			criteria: SearchCriteria{
				Start: date(2023, time.January, 1),
				End:   date(2023, time.January, 31),
			},
			expected: "after:2023-01-01 before:2023-01-31",
		},
		{
			name:     "start date only",
			criteria: SearchCriteria{Start: date(2023, time.June, 15)},
			expected: "after:2023-06-15",
		},
		{
			name:     "end date only",
			criteria: SearchCriteria{End: date(2023, time.June, 15)},
			expected: "before:2023-06-15",
		},
		{
			name: "fixed clause order",
			criteria: SearchCriteria{
				Keyword: "report",
				From:    "alice@example.com",
				To:      "bob@example.com",
				Label:   "work",
				Start:   date(2023, time.March, 1),
				End:     date(2023, time.April, 1),
			},
			expected: "(report in:body OR report in:subject) from:alice@example.com to:bob@example.com label:work after:2023-03-01 before:2023-04-01",
		},
		{
			name:     "values pass through verbatim",
			criteria: SearchCriteria{Keyword: `"exact phrase"`},
			expected: `("exact phrase" in:body OR "exact phrase" in:subject)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildQuery(tt.criteria))
		})
	}
}

func TestBuildQueryIgnoresLimit(t *testing.T) {
	// The limit caps result counts; it is not part of the query string.
	q := BuildQuery(SearchCriteria{From: "a@x.com", Limit: 5})
	assert.Equal(t, "from:a@x.com", q)
}
