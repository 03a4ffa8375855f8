package services

import (
	"strings"

	"github.com/fenilmodi00/ipo-dashboard/models"
)

// FilterRecords returns the records matching query in their original order.
// The input slice is never modified.
func FilterRecords(records []models.IPORecord, query Query) []models.IPORecord {
	filtered := make([]models.IPORecord, 0, len(records))

	for _, record := range records {
		if matchesQuery(record, query) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

func matchesQuery(record models.IPORecord, query Query) bool {
	switch q := query.(type) {
	case YearQuery:
		return q.Contains(record.Year)
	case TextQuery:
		return matchesText(record, q.Term)
	default:
		return true
	}
}

// matchesText is a logical OR across company, ticker and tags.
func matchesText(record models.IPORecord, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(record.Company), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(record.Ticker), lowerTerm) {
		return true
	}
	return record.HasTag(lowerTerm)
}
