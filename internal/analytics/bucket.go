package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

// Buckets returns every calendar bucket that intersects r, in chronological order.
// Unknown granularities fall back to daily.
func Buckets(r entity.DateRange, g entity.Granularity) []entity.Bucket {
	var buckets []entity.Bucket
	end := bucketStart(r.To, g)
	for cur := bucketStart(r.From, g); !cur.After(end); cur = bucketNext(cur, g) {
		buckets = append(buckets, entity.Bucket{
			Start: cur,
			End:   bucketNext(cur, g),
			Label: bucketLabel(cur, g),
		})
	}
	return buckets
}

// bucketIndex finds the bucket holding t using start <= t < end.
// Records outside r are rejected so partial edge buckets only see in-range data.
func bucketIndex(buckets []entity.Bucket, r entity.DateRange, t time.Time) (int, bool) {
	if !Contains(r, t) {
		return 0, false
	}
	i := sort.Search(len(buckets), func(i int) bool {
		return t.Before(buckets[i].End)
	})
	if i == len(buckets) || t.Before(buckets[i].Start) {
		return 0, false
	}
	return i, true
}

func bucketStart(t time.Time, g entity.Granularity) time.Time {
	loc := t.Location()
	switch g {
	case entity.GranularityWeekly:
		// ISO weeks start on Monday; Go: 0=Sun, 1=Mon
		weekday := int(t.Weekday())
		daysBack := (weekday + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-daysBack, 0, 0, 0, 0, loc)
	case entity.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

func bucketNext(t time.Time, g entity.Granularity) time.Time {
	switch g {
	case entity.GranularityWeekly:
		return t.AddDate(0, 0, 7)
	case entity.GranularityMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func bucketLabel(t time.Time, g entity.Granularity) string {
	switch g {
	case entity.GranularityWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case entity.GranularityMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
