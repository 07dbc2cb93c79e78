package gmail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBatchSpec(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected BatchSpec
		wantErr  bool
	}{
		{name: "integer is count form", token: "4", expected: CountSpec(4)},
		{name: "surrounding whitespace", token: " 12 ", expected: CountSpec(12)},
		{name: "singular unit", token: "1 month", expected: StepSpec(1, UnitMonth)},
		{name: "plural unit", token: "2 weeks", expected: StepSpec(2, UnitWeek)},
		{name: "uppercase unit", token: "3 Days", expected: StepSpec(3, UnitDay)},
		{name: "year unit", token: "1 year", expected: StepSpec(1, UnitYear)},
		{name: "zero count", token: "0", wantErr: true},
		{name: "negative count", token: "-2", wantErr: true},
		{name: "zero amount", token: "0 days", wantErr: true},
		{name: "unknown unit", token: "2 fortnights", wantErr: true},
		{name: "too many fields", token: "1 2 days", wantErr: true},
		{name: "empty token", token: "", wantErr: true},
		{name: "bare unit", token: "month", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseBatchSpec(tt.token)
			if tt.wantErr {
				var malformed *MalformedBatchSpecError
				require.ErrorAs(t, err, &malformed)
				assert.Equal(t, tt.token, malformed.Token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestPartitionRejectsUnparsableSpec(t *testing.T) {
	tests := []struct {
		name string
		spec BatchSpec
	}{
		{name: "zero value", spec: BatchSpec{}},
		{name: "negative count", spec: BatchSpec{Count: -2}},
		{name: "negative step", spec: BatchSpec{Step: -1, Unit: UnitDay}},
		{name: "zero step with unit", spec: BatchSpec{Unit: UnitMonth}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intervals, err := Partition(tt.spec, date(2023, time.June, 1), date(2023, time.June, 30))
			var malformed *MalformedBatchSpecError
			require.ErrorAs(t, err, &malformed)
			assert.Nil(t, intervals)
		})
	}
}

func TestPartitionRejectsInvertedRange(t *testing.T) {
	_, err := Partition(CountSpec(2), date(2023, time.June, 2), date(2023, time.June, 1))
	var invalid *InvalidRangeError
	require.ErrorAs(t, err, &invalid)
}

func TestPartitionSingleDay(t *testing.T) {
	d := date(2023, time.June, 1)

	for _, spec := range []BatchSpec{CountSpec(4), StepSpec(1, UnitWeek)} {
		intervals, err := Partition(spec, d, d)
		require.NoError(t, err)
		require.Len(t, intervals, 1)
		assert.Equal(t, DateInterval{Start: d, End: d}, intervals[0])
	}
}

func TestPartitionByCount(t *testing.T) {
	start := date(2023, time.January, 1)
	end := date(2023, time.December, 31)

	intervals, err := Partition(CountSpec(4), start, end)
	require.NoError(t, err)
	require.Len(t, intervals, 4)

	assert.Equal(t, start, intervals[0].Start)
	assert.Equal(t, end, intervals[3].End)

	// 364 days / 4 = 91 days per batch.
	assert.Equal(t, date(2023, time.April, 2), intervals[0].End)
	assert.Equal(t, date(2023, time.April, 3), intervals[1].Start)

	for i := 1; i < len(intervals); i++ {
		assert.True(t, intervals[i].Start.After(intervals[i-1].End),
			"interval %d must start strictly after interval %d ends", i, i-1)
		// Exactly one day between batches: the exclusive before: boundary.
		assert.Equal(t, intervals[i-1].End.AddDate(0, 0, 1), intervals[i].Start)
	}
}

func TestPartitionByCountRemainderInLastBatch(t *testing.T) {
	// 30 days / 4 = 7 per batch; the last batch absorbs the remainder.
	intervals, err := Partition(CountSpec(4), date(2023, time.June, 1), date(2023, time.July, 1))
	require.NoError(t, err)
	require.Len(t, intervals, 4)

	assert.Equal(t, date(2023, time.June, 8), intervals[0].End)
	assert.Equal(t, date(2023, time.June, 16), intervals[1].End)
	assert.Equal(t, date(2023, time.June, 24), intervals[2].End)
	assert.Equal(t, date(2023, time.July, 1), intervals[3].End)
}

func TestPartitionByCountDegenerateBatches(t *testing.T) {
	// More batches than days: zero-width intervals collapse onto the
	// final day rather than erroring.
	start := date(2023, time.June, 1)
	end := date(2023, time.June, 2)

	intervals, err := Partition(CountSpec(5), start, end)
	require.NoError(t, err)
	require.Len(t, intervals, 5)

	assert.Equal(t, start, intervals[0].Start)
	assert.Equal(t, end, intervals[4].End)
	for _, iv := range intervals {
		assert.False(t, iv.Start.After(iv.End), "interval start must not pass its end")
	}
}

func TestPartitionByMonthStep(t *testing.T) {
	intervals, err := Partition(StepSpec(1, UnitMonth),
		date(2023, time.January, 1), date(2023, time.March, 31))
	require.NoError(t, err)
	require.Len(t, intervals, 3)

	assert.Equal(t, date(2023, time.February, 1), intervals[0].End)
	assert.Equal(t, date(2023, time.March, 1), intervals[1].End)
	assert.Equal(t, date(2023, time.March, 31), intervals[2].End)

	// Cursor advances by the unclamped step even when the interval end
	// was clamped.
	assert.Equal(t, date(2023, time.March, 1), intervals[2].Start)
}

func TestPartitionByWeekStep(t *testing.T) {
	intervals, err := Partition(StepSpec(2, UnitWeek),
		date(2023, time.June, 1), date(2023, time.June, 30))
	require.NoError(t, err)
	require.Len(t, intervals, 3)

	assert.Equal(t, date(2023, time.June, 15), intervals[0].End)
	assert.Equal(t, date(2023, time.June, 29), intervals[1].End)
	assert.Equal(t, date(2023, time.June, 30), intervals[2].End)
}

func TestPartitionByMonthStepEndOfMonthRollover(t *testing.T) {
	// AddDate normalizes Jan 31 + 1 month into March. Documented
	// convention, asserted here so a library change is noticed.
	intervals, err := Partition(StepSpec(1, UnitMonth),
		date(2023, time.January, 31), date(2023, time.April, 30))
	require.NoError(t, err)

	assert.Equal(t, date(2023, time.March, 3), intervals[0].End)
}

func TestPartitionCoversRangeWithoutOverlap(t *testing.T) {
	start := date(2022, time.March, 5)
	end := date(2023, time.November, 17)

	specs := []BatchSpec{
		CountSpec(1), CountSpec(3), CountSpec(7), CountSpec(10),
		StepSpec(1, UnitDay), StepSpec(10, UnitDay), StepSpec(3, UnitWeek),
		StepSpec(2, UnitMonth), StepSpec(1, UnitYear),
	}

	for _, spec := range specs {
		intervals, err := Partition(spec, start, end)
		require.NoError(t, err)
		require.NotEmpty(t, intervals)

		assert.Equal(t, start, intervals[0].Start)
		assert.Equal(t, end, intervals[len(intervals)-1].End)

		// Sum of day-spans reconstructs the range: every day is covered
		// exactly once when counting the one-day seam between batches.
		covered := 0
		for i, iv := range intervals {
			require.False(t, iv.Start.After(iv.End))
			covered += daysBetween(iv.Start, iv.End) + 1
			if i > 0 {
				assert.False(t, iv.Start.Before(intervals[i-1].End),
					"intervals must not overlap")
			}
		}

		if spec.Count > 0 {
			// Count form: seams are explicit one-day gaps.
			assert.Equal(t, daysBetween(start, end)+1, covered)
		} else {
			// Step form: each seam day is the exclusive before: bound of
			// one batch and the start of the next.
			assert.Equal(t, daysBetween(start, end)+len(intervals), covered)
		}
	}
}
