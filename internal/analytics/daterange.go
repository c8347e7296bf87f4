package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

// Period is a date range preset.
type Period string

const (
	Period7d     Period = "7d"
	Period30d    Period = "30d"
	Period90d    Period = "90d"
	PeriodCustom Period = "custom"
)

var presetDays = map[Period]int{
	Period7d:  7,
	Period30d: 30,
	Period90d: 90,
}

// InvalidRangeError is returned when a date range request cannot be resolved.
type InvalidRangeError struct {
	Period Period
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range %q: %s", e.Period, e.Reason)
}

// ResolveDateRange turns a preset or a custom start/end pair into a normalized range.
// For custom ranges both bounds are required; nothing is defaulted.
func ResolveDateRange(period Period, start, end *time.Time, now time.Time) (entity.DateRange, error) {
	if period == PeriodCustom {
		if start == nil || end == nil {
			return entity.DateRange{}, &InvalidRangeError{Period: period, Reason: "both start and end are required"}
		}
		r := entity.DateRange{
			From: StartOfDay(*start),
			To:   EndOfDay(*end),
		}
		if r.From.After(r.To) {
			return entity.DateRange{}, &InvalidRangeError{Period: period, Reason: "start is after end"}
		}
		return r, nil
	}

	days, ok := presetDays[period]
	if !ok {
		return entity.DateRange{}, &InvalidRangeError{Period: period, Reason: "unknown period"}
	}
	return entity.DateRange{
		From: StartOfDay(now.AddDate(0, 0, -days)),
		To:   EndOfDay(now),
	}, nil
}

// PreviousPeriod returns the window of equal length that ends right before r.
func PreviousPeriod(r entity.DateRange) entity.DateRange {
	days := RangeDays(r)
	return entity.DateRange{
		From: r.From.AddDate(0, 0, -days),
		To:   r.To.AddDate(0, 0, -days),
	}
}

// RangeDays is the inclusive calendar day count of r. Dates are compared in UTC
// so a DST transition inside the range does not add or drop a day.
func RangeDays(r entity.DateRange) int {
	from := time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(r.To.Year(), r.To.Month(), r.To.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(to.Sub(from).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Contains reports whether t is inside the inclusive range.
func Contains(r entity.DateRange, t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
