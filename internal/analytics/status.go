package analytics

import (
	"sort"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

// StatusDistribution counts every order by status, regardless of completion.
func StatusDistribution(orders []entity.Order) []entity.OrderStatusCount {
	counts := map[entity.OrderStatusName]int{}
	for _, o := range orders {
		counts[o.Status]++
	}

	result := make([]entity.OrderStatusCount, 0, len(counts))
	for status, count := range counts {
		result = append(result, entity.OrderStatusCount{
			Status:            status,
			Count:             count,
			PercentageOfTotal: percentageInt(count, len(orders)),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Status < result[j].Status
	})
	return result
}
