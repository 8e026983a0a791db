// internal/pipeline/aggregate.go
package pipeline

import (
	"math"

	"github.com/samber/lo"
)

type Stats struct {
	TotalCount        int     `json:"total_count"`
	FilteredCount     int     `json:"filtered_count"`
	TotalValue        float64 `json:"total_value"`
	UniqueSeriesCount int     `json:"unique_series_count"`
}

// Aggregate summarizes the filtered (not paginated) set. totalCount is the
// size of the unfiltered source and is passed through unchanged.
func Aggregate(totalCount int, filtered []Item) Stats {
	var sum float64
	for _, it := range filtered {
		if price := finite(it.PurchasePrice.OrElse(0)); price > 0 {
			sum += price
		}
	}

	series := lo.Uniq(lo.FlatMap(filtered, func(it Item, _ int) []string {
		return it.Series
	}))

	return Stats{
		TotalCount:        totalCount,
		FilteredCount:     len(filtered),
		TotalValue:        Round2(sum),
		UniqueSeriesCount: len(series),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
