package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a customer together with its lifetime order aggregates.
type Customer struct {
	ID            int             `db:"id"`
	Email         string          `db:"email"`
	TotalSpent    decimal.Decimal `db:"total_spent"`
	TotalOrders   int             `db:"total_orders"`
	LastOrderDate *time.Time      `db:"last_order_date"`
	CreatedAt     time.Time       `db:"created_at"`
}

// CustomerSegment is one of the five customer classifications.
type CustomerSegment string

const (
	SegmentVIP      CustomerSegment = "vip"
	SegmentNew      CustomerSegment = "new"
	SegmentAtRisk   CustomerSegment = "at_risk"
	SegmentActive   CustomerSegment = "active"
	SegmentInactive CustomerSegment = "inactive"
)

// SegmentPriority lists segments from highest to lowest precedence.
var SegmentPriority = []CustomerSegment{
	SegmentVIP,
	SegmentNew,
	SegmentInactive,
	SegmentAtRisk,
	SegmentActive,
}

// ValidCustomerSegments is a set of valid segment names
var ValidCustomerSegments = map[CustomerSegment]bool{
	SegmentVIP:      true,
	SegmentNew:      true,
	SegmentAtRisk:   true,
	SegmentActive:   true,
	SegmentInactive: true,
}

// SegmentConfig holds the classification thresholds.
type SegmentConfig struct {
	VIPMinSpent         decimal.Decimal
	VIPMinOrders        int
	NewDaysThreshold    int
	AtRiskDaysThreshold int
}

// DefaultSegmentConfig returns default thresholds.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{
		VIPMinSpent:         decimal.NewFromInt(500),
		VIPMinOrders:        5,
		NewDaysThreshold:    30,
		AtRiskDaysThreshold: 90,
	}
}

// CustomerClassification is the full classification of one customer.
// Segments is ordered by SegmentPriority; Primary is always Segments[0].
type CustomerClassification struct {
	CustomerID int
	Primary    CustomerSegment
	Segments   []CustomerSegment
}

// SegmentCount is the number of customers holding a segment as primary.
type SegmentCount struct {
	Segment           CustomerSegment
	Count             int
	PercentageOfTotal float64
}
