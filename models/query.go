package models

import (
	"fmt"
	"strings"
)

// SuggestionCategory identifies what an autocomplete entry inserts.
type SuggestionCategory string

const (
	SuggestionTicker    SuggestionCategory = "ticker"
	SuggestionTag       SuggestionCategory = "tag"
	SuggestionYear      SuggestionCategory = "year"
	SuggestionYearRange SuggestionCategory = "year_range"
)

// Suggestion is one autocomplete candidate. Value is inserted into the search box on selection.
type Suggestion struct {
	Value    string             `json:"value"`
	Display  string             `json:"display"`
	Category SuggestionCategory `json:"category"`
}

// SortField names a sortable record attribute.
type SortField string

const (
	SortCompany               SortField = "company"
	SortTicker                SortField = "ticker"
	SortYear                  SortField = "year"
	SortIPOPrice              SortField = "ipoPrice"
	SortFirstDayPrice         SortField = "firstDayPrice"
	SortFirstDayPop           SortField = "firstDayPop"
	SortCurrentPrice          SortField = "currentPrice"
	SortTotalReturn           SortField = "totalReturn"
	SortYear1Return           SortField = "year1Return"
	SortYear3AnnualizedReturn SortField = "year3AnnualizedReturn"
	SortYear1Outperformance   SortField = "year1Outperformance"
	SortYear3Outperformance   SortField = "year3Outperformance"
	SortStatus                SortField = "status"
)

var sortFields = []SortField{
	SortCompany, SortTicker, SortYear, SortIPOPrice, SortFirstDayPrice, SortFirstDayPop,
	SortCurrentPrice, SortTotalReturn, SortYear1Return, SortYear3AnnualizedReturn,
	SortYear1Outperformance, SortYear3Outperformance, SortStatus,
}

// SortFields lists every accepted sort field identifier.
func SortFields() []SortField {
	out := make([]SortField, len(sortFields))
	copy(out, sortFields)
	return out
}

// ParseSortField validates a sort field identifier, case-insensitively.
func ParseSortField(s string) (SortField, error) {
	trimmed := strings.TrimSpace(s)
	for _, f := range sortFields {
		if strings.EqualFold(string(f), trimmed) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// IsText reports whether the field compares as a string.
func (f SortField) IsText() bool {
	return f == SortCompany || f == SortTicker || f == SortStatus
}

// Fallback returns the 1-year field that stands in for a 3-year field when a
// record lacks 3-year history.
func (f SortField) Fallback() (SortField, bool) {
	switch f {
	case SortYear3AnnualizedReturn:
		return SortYear1Return, true
	case SortYear3Outperformance:
		return SortYear1Outperformance, true
	}
	return "", false
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection accepts asc/desc (and the long forms), case-insensitively.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// TextValue returns the string value of a text field.
func (r IPORecord) TextValue(f SortField) string {
	switch f {
	case SortCompany:
		return r.Company
	case SortTicker:
		return r.Ticker
	case SortStatus:
		return r.Status
	}
	return ""
}

// NumericValue returns the value of a numeric field, or nil when undefined.
func (r IPORecord) NumericValue(f SortField) *float64 {
	switch f {
	case SortYear:
		return Float(float64(r.Year))
	case SortIPOPrice:
		return r.IPOPrice
	case SortFirstDayPrice:
		return r.FirstDayPrice
	case SortFirstDayPop:
		return Float(r.FirstDayPop)
	case SortCurrentPrice:
		return r.CurrentPrice
	case SortTotalReturn:
		return r.TotalReturn()
	case SortYear1Return:
		return r.Year1Return
	case SortYear3AnnualizedReturn:
		return r.Year3AnnualizedReturn
	case SortYear1Outperformance:
		return r.Year1Outperformance
	case SortYear3Outperformance:
		return r.Year3Outperformance
	}
	return nil
}

// YearCount is one bar of the yearly IPO chart.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// ScatterPoint is one point of the configurable scatter plot.
type ScatterPoint struct {
	Ticker   string  `json:"ticker"`
	Company  string  `json:"company"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Acquired bool    `json:"acquired"`
}
