package gmail

import "time"

// MessageSummary is one search result. All fields are passed through from
// the provider as-is; the CLI never interprets them beyond display.
type MessageSummary struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	Snippet  string `json:"snippet"`
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
}

// Label is a Gmail label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SearchCriteria is the set of user-supplied filters for one search.
// String fields are optional; the empty string means "not set" (an empty
// value is never a meaningful filter in the provider query language).
// Start/End are calendar dates at UTC midnight; the zero time means the
// bound is open. Limit caps the total result count; zero means no cap.
type SearchCriteria struct {
	Keyword string
	From    string
	To      string
	Label   string
	Start   time.Time
	End     time.Time
	Limit   int
}

// WithRange returns a copy of the criteria with the date bounds replaced
// by the given interval. Used to derive per-batch criteria.
func (c SearchCriteria) WithRange(iv DateInterval) SearchCriteria {
	c.Start = iv.Start
	c.End = iv.End
	return c
}

// HasRange reports whether both date bounds are set.
func (c SearchCriteria) HasRange() bool {
	return !c.Start.IsZero() && !c.End.IsZero()
}
