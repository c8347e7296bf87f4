package analytics

import (
	"slices"
	"sort"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

// Classifier assigns customer segments from spend, order count, registration
// age and recency of the last order.
type Classifier struct {
	c   entity.SegmentConfig
	now func() time.Time
}

// NewClassifier creates a classifier; a nil clock means time.Now.
func NewClassifier(c entity.SegmentConfig, now func() time.Time) *Classifier {
	if now == nil {
		now = time.Now
	}
	return &Classifier{c: c, now: now}
}

// Segments returns every segment the customer holds, highest priority first.
// The slice is never empty.
func (cl *Classifier) Segments(c entity.Customer) []entity.CustomerSegment {
	now := cl.now()
	isNew := daysSince(c.CreatedAt, now) <= cl.c.NewDaysThreshold

	var segments []entity.CustomerSegment
	if c.TotalSpent.GreaterThanOrEqual(cl.c.VIPMinSpent) || c.TotalOrders >= cl.c.VIPMinOrders {
		segments = append(segments, entity.SegmentVIP)
	}
	if isNew {
		segments = append(segments, entity.SegmentNew)
	}
	if c.TotalOrders == 0 && !isNew {
		segments = append(segments, entity.SegmentInactive)
	}
	if c.LastOrderDate != nil && daysSince(*c.LastOrderDate, now) >= cl.c.AtRiskDaysThreshold {
		segments = append(segments, entity.SegmentAtRisk)
	}
	if len(segments) == 0 {
		segments = append(segments, entity.SegmentActive)
	}
	return segments
}

// Classify returns the primary segment of the customer.
func (cl *Classifier) Classify(c entity.Customer) entity.CustomerSegment {
	return cl.Segments(c)[0]
}

// ClassifyAll classifies every customer. When filter is non-empty only
// customers holding that segment (primary or not) are returned.
func (cl *Classifier) ClassifyAll(customers []entity.Customer, filter entity.CustomerSegment) []entity.CustomerClassification {
	result := make([]entity.CustomerClassification, 0, len(customers))
	for _, c := range customers {
		segments := cl.Segments(c)
		if filter != "" && !slices.Contains(segments, filter) {
			continue
		}
		result = append(result, entity.CustomerClassification{
			CustomerID: c.ID,
			Primary:    segments[0],
			Segments:   segments,
		})
	}
	return result
}

// Distribution counts customers by primary segment. Every segment is present,
// even with a zero count; equal counts keep priority order.
func (cl *Classifier) Distribution(customers []entity.Customer) []entity.SegmentCount {
	counts := map[entity.CustomerSegment]int{}
	for _, c := range customers {
		counts[cl.Classify(c)]++
	}
	result := make([]entity.SegmentCount, 0, len(entity.SegmentPriority))
	for _, s := range entity.SegmentPriority {
		result = append(result, entity.SegmentCount{
			Segment:           s,
			Count:             counts[s],
			PercentageOfTotal: percentageInt(counts[s], len(customers)),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// daysSince counts whole 24h periods elapsed from t to now.
func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
