package gmail

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StepUnit is a calendar unit for duration-based batching.
type StepUnit string

const (
	UnitDay   StepUnit = "day"
	UnitWeek  StepUnit = "week"
	UnitMonth StepUnit = "month"
	UnitYear  StepUnit = "year"
)

// BatchSpec describes how a date range is split into batches. Exactly one
// form is populated: Count divides the range into that many roughly-equal
// intervals; Step/Unit walks the range in fixed calendar hops.
type BatchSpec struct {
	Count int
	Step  int
	Unit  StepUnit
}

// CountSpec returns a spec that divides a range into n batches.
func CountSpec(n int) BatchSpec {
	return BatchSpec{Count: n}
}

// StepSpec returns a spec that walks a range in amount-sized unit hops.
func StepSpec(amount int, unit StepUnit) BatchSpec {
	return BatchSpec{Step: amount, Unit: unit}
}

// String renders the spec in the token form ParseBatchSpec accepts.
func (s BatchSpec) String() string {
	if s.Count > 0 {
		return strconv.Itoa(s.Count)
	}
	return fmt.Sprintf("%d %s", s.Step, s.Unit)
}

// ParseBatchSpec parses a batch-size token. A bare integer selects the
// count form; otherwise the token is split into "<amount> <unit>" where
// the unit accepts an optional plural "s" ("2 weeks" == "2 week").
func ParseBatchSpec(token string) (BatchSpec, error) {
	trimmed := strings.TrimSpace(token)

	if n, err := strconv.Atoi(trimmed); err == nil {
		if n <= 0 {
			return BatchSpec{}, &MalformedBatchSpecError{Token: token}
		}
		return CountSpec(n), nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) != 2 {
		return BatchSpec{}, &MalformedBatchSpecError{Token: token}
	}

	amount, err := strconv.Atoi(fields[0])
	if err != nil || amount <= 0 {
		return BatchSpec{}, &MalformedBatchSpecError{Token: token}
	}

	unit, ok := parseUnit(fields[1])
	if !ok {
		return BatchSpec{}, &MalformedBatchSpecError{Token: token}
	}

	return StepSpec(amount, unit), nil
}

func parseUnit(s string) (StepUnit, bool) {
	switch strings.TrimSuffix(strings.ToLower(s), "s") {
	case "day":
		return UnitDay, true
	case "week":
		return UnitWeek, true
	case "month":
		return UnitMonth, true
	case "year":
		return UnitYear, true
	default:
		return "", false
	}
}

// DateInterval is one contiguous sub-range of a partitioned date range.
// Start and End are inclusive calendar dates with Start <= End.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// Partition splits [start, end] into ordered, non-overlapping intervals
// per the spec. The first interval starts at start and the last ends
// exactly at end. Start == end yields a single zero-width interval;
// start after end is rejected before any I/O.
//
// Consecutive intervals are separated by one day: each batch queries the
// provider with an exclusive `before:` bound, so the next batch begins
// the day after the previous batch's end rather than on it.
func Partition(spec BatchSpec, start, end time.Time) ([]DateInterval, error) {
	// ParseBatchSpec never produces one, but BatchSpec can be built
	// directly: without a positive count or step the cursor cannot
	// advance, so reject the spec before the step loop can spin.
	if spec.Count <= 0 && spec.Step <= 0 {
		return nil, &MalformedBatchSpecError{Token: spec.String()}
	}
	if start.After(end) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}
	if start.Equal(end) {
		return []DateInterval{{Start: start, End: end}}, nil
	}
	if spec.Count > 0 {
		return partitionByCount(spec.Count, start, end), nil
	}
	return partitionByStep(spec.Step, spec.Unit, start, end), nil
}

// partitionByCount divides the range into n intervals of floor(total/n)
// days each. All rounding remainder lands in the final interval, which is
// pinned to the range end and may be longer or shorter than the rest.
// When n exceeds the day count the trailing intervals collapse onto the
// final day; that is permitted and their queries still execute.
func partitionByCount(n int, start, end time.Time) []DateInterval {
	perBatch := daysBetween(start, end) / n

	intervals := make([]DateInterval, 0, n)
	cur := start
	for i := 0; i < n; i++ {
		ivEnd := cur.AddDate(0, 0, perBatch)
		if i == n-1 || ivEnd.After(end) {
			ivEnd = end
		}
		intervals = append(intervals, DateInterval{Start: cur, End: ivEnd})

		cur = ivEnd.AddDate(0, 0, 1)
		if cur.After(end) {
			cur = end
		}
	}
	return intervals
}

// partitionByStep walks the range in fixed calendar hops. The interval
// end is clamped to the range end but the cursor advances by the
// unclamped candidate, so a final short interval never distorts the step
// cadence. Calendar arithmetic uses time.AddDate, which normalizes
// overflow (Jan 31 plus one month rolls into early March).
func partitionByStep(amount int, unit StepUnit, start, end time.Time) []DateInterval {
	var intervals []DateInterval
	for cur := start; cur.Before(end); {
		next := stepForward(cur, amount, unit)

		ivEnd := next
		if ivEnd.After(end) {
			ivEnd = end
		}
		intervals = append(intervals, DateInterval{Start: cur, End: ivEnd})

		cur = next
	}
	return intervals
}

func stepForward(t time.Time, amount int, unit StepUnit) time.Time {
	switch unit {
	case UnitWeek:
		return t.AddDate(0, 0, 7*amount)
	case UnitMonth:
		return t.AddDate(0, amount, 0)
	case UnitYear:
		return t.AddDate(amount, 0, 0)
	default:
		return t.AddDate(0, 0, amount)
	}
}
