package gmail

import "time"

// DateFormat is the calendar date layout used on the CLI and in the
// provider query language (after:/before: clauses).
const DateFormat = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// daysBetween returns the number of whole calendar days from a to b.
// Both arguments are expected to be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
