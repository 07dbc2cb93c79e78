package gmail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2023-06-15")
	require.NoError(t, err)
	assert.Equal(t, date(2023, time.June, 15), parsed)

	_, err = ParseDate("06/15/2023")
	assert.Error(t, err)

	_, err = ParseDate("2023-13-01")
	assert.Error(t, err)
}

func TestFormatDateRoundTrip(t *testing.T) {
	assert.Equal(t, "2023-06-15", FormatDate(date(2023, time.June, 15)))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		a, b     time.Time
		expected int
	}{
		{name: "same day", a: date(2023, time.June, 1), b: date(2023, time.June, 1), expected: 0},
		{name: "one day", a: date(2023, time.June, 1), b: date(2023, time.June, 2), expected: 1},
		{name: "full year", a: date(2023, time.January, 1), b: date(2023, time.December, 31), expected: 364},
		{name: "leap year", a: date(2024, time.January, 1), b: date(2024, time.December, 31), expected: 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, daysBetween(tt.a, tt.b))
		})
	}
}
