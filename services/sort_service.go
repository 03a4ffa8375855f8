package services

import (
	"slices"
	"strings"

	"github.com/fenilmodi00/ipo-dashboard/models"
)

// sortRule compares two records. settled=true ends the chain with cmp as the
// final answer, even when cmp is 0.
type sortRule func(a, b *models.IPORecord) (cmp int, settled bool)

// SortRecords returns a new slice ordered by field and direction. Acquired records
// always sink to the bottom, records with 3-year history lead 3-year sorts, and
// undefined values trail defined ones in either direction. The sort is stable.
func SortRecords(records []models.IPORecord, field models.SortField, direction models.SortDirection) []models.IPORecord {
	sorted := make([]models.IPORecord, len(records))
	copy(sorted, records)

	compare := newComparator(field, direction)
	slices.SortStableFunc(sorted, func(a, b models.IPORecord) int {
		return compare(&a, &b)
	})

	return sorted
}

func newComparator(field models.SortField, direction models.SortDirection) func(a, b *models.IPORecord) int {
	rules := []sortRule{acquisitionFloor}

	if field.IsText() {
		rules = append(rules, textRule(field, direction))
	} else {
		if fallback, ok := field.Fallback(); ok {
			rules = append(rules, availabilityGroup(field))
			rules = append(rules, numericRule(activeValue(field, fallback), direction)...)
		} else {
			rules = append(rules, numericRule(fieldValue(field), direction)...)
		}
	}

	return func(a, b *models.IPORecord) int {
		for _, rule := range rules {
			if cmp, settled := rule(a, b); settled || cmp != 0 {
				return cmp
			}
		}
		return 0
	}
}

// acquisitionFloor puts acquired records after all others. Two acquired records
// settle as equal so they keep their input order.
func acquisitionFloor(a, b *models.IPORecord) (int, bool) {
	aAcq, bAcq := a.IsAcquired(), b.IsAcquired()
	switch {
	case aAcq && bAcq:
		return 0, true
	case aAcq:
		return 1, true
	case bAcq:
		return -1, true
	}
	return 0, false
}

// availabilityGroup puts records with a defined value on field ahead of those
// without, regardless of direction.
func availabilityGroup(field models.SortField) sortRule {
	return func(a, b *models.IPORecord) (int, bool) {
		aHas, bHas := a.NumericValue(field) != nil, b.NumericValue(field) != nil
		switch {
		case aHas && !bHas:
			return -1, true
		case !aHas && bHas:
			return 1, true
		}
		return 0, false
	}
}

type valueFunc func(r *models.IPORecord) *float64

func fieldValue(field models.SortField) valueFunc {
	return func(r *models.IPORecord) *float64 { return r.NumericValue(field) }
}

// activeValue reads field, or fallback when field is undefined. Inside a single
// availability group both records resolve through the same field.
func activeValue(field, fallback models.SortField) valueFunc {
	return func(r *models.IPORecord) *float64 {
		if v := r.NumericValue(field); v != nil {
			return v
		}
		return r.NumericValue(fallback)
	}
}

func numericRule(value valueFunc, direction models.SortDirection) []sortRule {
	nullsLast := func(a, b *models.IPORecord) (int, bool) {
		aNil, bNil := value(a) == nil, value(b) == nil
		switch {
		case aNil && bNil:
			return 0, true
		case aNil:
			return 1, true
		case bNil:
			return -1, true
		}
		return 0, false
	}

	base := func(a, b *models.IPORecord) (int, bool) {
		diff := *value(a) - *value(b)
		cmp := 0
		if diff < 0 {
			cmp = -1
		} else if diff > 0 {
			cmp = 1
		}
		return applyDirection(cmp, direction), true
	}

	return []sortRule{nullsLast, base}
}

func textRule(field models.SortField, direction models.SortDirection) sortRule {
	return func(a, b *models.IPORecord) (int, bool) {
		cmp := strings.Compare(strings.ToLower(a.TextValue(field)), strings.ToLower(b.TextValue(field)))
		return applyDirection(cmp, direction), true
	}
}

func applyDirection(cmp int, direction models.SortDirection) int {
	if direction == models.Descending {
		return -cmp
	}
	return cmp
}
