package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
)

// DefaultPeriod is used when the query has neither a period nor bounds.
const DefaultPeriod = "30d"

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// AnalyticsQuery is the query string shared by every analytics endpoint.
type AnalyticsQuery struct {
	Period      string `valid:"in(7d|30d|90d|custom)"`
	Start       string `valid:"-"`
	End         string `valid:"-"`
	Granularity string `valid:"in(daily|weekly|monthly)"`
	Compare     bool   `valid:"-"`
	Limit       int    `valid:"range(0|100)"`
	Segment     string `valid:"in(vip|new|at_risk|active|inactive)"`

	start *time.Time
	end   *time.Time
}

// ParseAnalyticsQuery reads and validates the query. Date-only bounds are
// interpreted in loc; RFC3339 bounds keep their own offset.
func ParseAnalyticsQuery(values url.Values, loc *time.Location) (*AnalyticsQuery, error) {
	if loc == nil {
		loc = time.UTC
	}
	q := &AnalyticsQuery{
		Period:      strings.ToLower(strings.TrimSpace(values.Get("period"))),
		Start:       strings.TrimSpace(values.Get("start")),
		End:         strings.TrimSpace(values.Get("end")),
		Granularity: strings.ToLower(strings.TrimSpace(values.Get("granularity"))),
		Segment:     strings.ToLower(strings.TrimSpace(values.Get("segment"))),
	}
	switch {
	case q.Period != "":
	case q.Start != "" || q.End != "":
		// bare bounds ask for a custom range
		q.Period = "custom"
	default:
		q.Period = DefaultPeriod
	}

	if s := values.Get("compare"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("%w: compare must be a boolean", gerr.ErrBadRequest)
		}
		q.Compare = b
	}
	if s := values.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: limit must be an integer", gerr.ErrBadRequest)
		}
		q.Limit = n
	}

	var err error
	if q.start, err = parseDate(q.Start, loc); err != nil {
		return nil, fmt.Errorf("%w: start: %v", gerr.ErrBadRequest, err)
	}
	if q.end, err = parseDate(q.End, loc); err != nil {
		return nil, fmt.Errorf("%w: end: %v", gerr.ErrBadRequest, err)
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *AnalyticsQuery) Validate() error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", gerr.ErrBadRequest)
	}
	return ValidateStruct(q)
}

// StartTime is the parsed start bound, nil when absent.
func (q *AnalyticsQuery) StartTime() *time.Time {
	return q.start
}

// EndTime is the parsed end bound, nil when absent.
func (q *AnalyticsQuery) EndTime() *time.Time {
	return q.end
}

func parseDate(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%q is neither 2006-01-02 nor RFC3339", s)
}

// DefaultQuery is the query of a request without parameters.
func DefaultQuery() *AnalyticsQuery {
	return &AnalyticsQuery{Period: DefaultPeriod}
}

// IsDefault reports whether q asks for nothing beyond the defaults.
func (q *AnalyticsQuery) IsDefault() bool {
	return q != nil &&
		q.Period == DefaultPeriod &&
		q.start == nil && q.end == nil &&
		(q.Granularity == "" || q.Granularity == "daily") &&
		!q.Compare &&
		q.Limit == 0 &&
		q.Segment == ""
}
