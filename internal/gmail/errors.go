package gmail

import (
	"fmt"
	"time"
)

// InvalidRangeError is returned when a start date falls after its end
// date. It is raised before any remote call is made.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s is after end %s",
		FormatDate(e.Start), FormatDate(e.End))
}

// MalformedBatchSpecError is returned when a batch-size token parses as
// neither a positive integer nor an "<amount> <unit>" pair.
type MalformedBatchSpecError struct {
	Token string
}

func (e *MalformedBatchSpecError) Error() string {
	return fmt.Sprintf("malformed batch size %q (want a positive integer or \"<amount> <day|week|month|year>\")", e.Token)
}

// RemoteSearchError wraps a failure from the mail provider. The search
// that produced it returns no partial results.
type RemoteSearchError struct {
	Query string
	Err   error
}

func (e *RemoteSearchError) Error() string {
	return fmt.Sprintf("remote search failed for query %q: %v", e.Query, e.Err)
}

func (e *RemoteSearchError) Unwrap() error {
	return e.Err
}
