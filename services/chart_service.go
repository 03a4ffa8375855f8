package services

import (
	"fmt"

	"github.com/fenilmodi00/ipo-dashboard/models"
)

// YearlyCounts counts records per IPO year from FirstSuggestedYear through
// max(DefaultCeilingYear, ceiling, latest record year), with zero-filled gaps.
// Records before FirstSuggestedYear fall outside the chart.
func YearlyCounts(records []models.IPORecord, ceiling int) []models.YearCount {
	last := max(ceiling, DefaultCeilingYear)
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.Year]++
		if r.Year > last {
			last = r.Year
		}
	}

	if last < FirstSuggestedYear {
		return []models.YearCount{}
	}

	series := make([]models.YearCount, 0, last-FirstSuggestedYear+1)
	for y := FirstSuggestedYear; y <= last; y++ {
		series = append(series, models.YearCount{Year: y, Count: counts[y]})
	}
	return series
}

// ScatterPoints pairs two numeric metrics per record, skipping records where
// either metric is undefined.
func ScatterPoints(records []models.IPORecord, xField, yField models.SortField) ([]models.ScatterPoint, error) {
	if xField.IsText() || yField.IsText() {
		return nil, fmt.Errorf("scatter axes must be numeric, got %q and %q", xField, yField)
	}

	points := make([]models.ScatterPoint, 0, len(records))
	for _, r := range records {
		x, y := r.NumericValue(xField), r.NumericValue(yField)
		if x == nil || y == nil {
			continue
		}
		points = append(points, models.ScatterPoint{
			Ticker:   r.Ticker,
			Company:  r.Company,
			X:        *x,
			Y:        *y,
			Acquired: r.IsAcquired(),
		})
	}
	return points, nil
}
