package analytics

import "github.com/jekabolt/grbpwr-analytics/internal/entity"

// BucketAcquisition counts customer registrations per bucket of r and keeps a
// running total in chronological order.
func BucketAcquisition(customers []entity.Customer, r entity.DateRange, g entity.Granularity) []entity.CustomerAcquisitionPoint {
	buckets := Buckets(r, g)
	points := make([]entity.CustomerAcquisitionPoint, len(buckets))
	for i, b := range buckets {
		points[i] = entity.CustomerAcquisitionPoint{
			BucketStart: b.Start,
			Label:       b.Label,
		}
	}
	for _, c := range customers {
		if i, ok := bucketIndex(buckets, r, c.CreatedAt); ok {
			points[i].NewCustomers++
		}
	}
	cumulative := 0
	for i := range points {
		cumulative += points[i].NewCustomers
		points[i].CumulativeTotal = cumulative
	}
	return points
}

// CountRegistered returns the number of customers registered inside r.
func CountRegistered(customers []entity.Customer, r entity.DateRange) int {
	n := 0
	for _, c := range customers {
		if Contains(r, c.CreatedAt) {
			n++
		}
	}
	return n
}
