package gmail

import (
	"fmt"
	"strings"
)

// BuildQuery translates criteria into a Gmail search string.
//
// Clauses are emitted in a fixed order (keyword, from, to, label, dates)
// and joined with single spaces, which the provider treats as implicit
// AND. The keyword clause is parenthesized so its internal OR composes
// conjunctively with the rest. Absent fields emit nothing; an all-absent
// criteria record yields the empty string. Values are passed through
// verbatim, with no escaping of query-special characters.
//
// Date bounds follow the provider's inclusive-after/exclusive-before
// semantics: `before:` excludes the named day.
func BuildQuery(c SearchCriteria) string {
	var parts []string

	if c.Keyword != "" {
		parts = append(parts, fmt.Sprintf("(%s in:body OR %s in:subject)", c.Keyword, c.Keyword))
	}
	if c.From != "" {
		parts = append(parts, "from:"+c.From)
	}
	if c.To != "" {
		parts = append(parts, "to:"+c.To)
	}
	if c.Label != "" {
		parts = append(parts, "label:"+c.Label)
	}
	if !c.Start.IsZero() {
		parts = append(parts, "after:"+FormatDate(c.Start))
	}
	if !c.End.IsZero() {
		parts = append(parts, "before:"+FormatDate(c.End))
	}

	return strings.Join(parts, " ")
}
