package models

import "strings"

// IPORecord is a single enterprise-software IPO in the dashboard dataset.
// Nullable metrics are pointers; nil means the metric is undefined for the record.
type IPORecord struct {
	// Basic Information
	Company string `json:"company"`
	Ticker  string `json:"ticker"`
	Year    int    `json:"year"`

	// Pricing Information
	IPOPrice         *float64 `json:"ipoPrice"`
	CurrentPrice     *float64 `json:"currentPrice"`
	FirstDayPrice    *float64 `json:"firstDayPrice"`
	AcquisitionPrice *float64 `json:"acquisitionPrice"`
	FirstDayPop      float64  `json:"firstDayPop"`

	// Returns (percent)
	Year1Return           *float64 `json:"year1Return"`
	Year3AnnualizedReturn *float64 `json:"year3AnnualizedReturn"`
	Year1Outperformance   *float64 `json:"year1Outperformance"`
	Year3Outperformance   *float64 `json:"year3Outperformance"`

	// Status Information
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

// Status categories. Raw status values carry qualifiers such as
// "Acquired by Salesforce (2019)", so classification is by substring.
const (
	StatusPublic   = "Public"
	StatusAcquired = "Acquired"
	StatusMerged   = "Merged"
	StatusDelisted = "Delisted"
	StatusReIPO    = "Re-IPO"
)

// VisibleTagCount is how many tags the table shows before summarising the rest.
const VisibleTagCount = 3

func (r IPORecord) IsAcquired() bool { return strings.Contains(r.Status, StatusAcquired) }
func (r IPORecord) IsMerged() bool   { return strings.Contains(r.Status, StatusMerged) }
func (r IPORecord) IsDelisted() bool { return strings.Contains(r.Status, StatusDelisted) }
func (r IPORecord) IsReIPO() bool    { return strings.Contains(r.Status, StatusReIPO) }

// IsPublic reports whether the record carries none of the exit statuses.
func (r IPORecord) IsPublic() bool {
	return !r.IsAcquired() && !r.IsMerged() && !r.IsDelisted() && !r.IsReIPO()
}

// StatusCategory collapses the raw status into one of the status constants.
func (r IPORecord) StatusCategory() string {
	switch {
	case r.IsAcquired():
		return StatusAcquired
	case r.IsMerged():
		return StatusMerged
	case r.IsDelisted():
		return StatusDelisted
	case r.IsReIPO():
		return StatusReIPO
	default:
		return StatusPublic
	}
}

// HasTag reports whether any tag contains the lower-cased term.
func (r IPORecord) HasTag(lowerTerm string) bool {
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

// TagSummary returns the tags shown in the table and the number summarised as "+N".
func (r IPORecord) TagSummary() ([]string, int) {
	if len(r.Tags) <= VisibleTagCount {
		return r.Tags, 0
	}
	return r.Tags[:VisibleTagCount], len(r.Tags) - VisibleTagCount
}

// EffectivePrice is the acquisition price for acquired records that carry one,
// otherwise the current price.
func (r IPORecord) EffectivePrice() *float64 {
	if r.IsAcquired() && r.AcquisitionPrice != nil {
		return r.AcquisitionPrice
	}
	return r.CurrentPrice
}

// TotalReturn is the percent change from IPO price to effective price.
// A missing or zero IPO price yields nil instead of an infinite value.
func (r IPORecord) TotalReturn() *float64 {
	price := r.EffectivePrice()
	if r.IPOPrice == nil || *r.IPOPrice == 0 || price == nil {
		return nil
	}
	ret := (*price - *r.IPOPrice) / *r.IPOPrice * 100
	return &ret
}

// IPORow is a record together with the derived values the table renders.
type IPORow struct {
	IPORecord
	StatusCategory string   `json:"statusCategory"`
	Public         bool     `json:"public"`
	VisibleTags    []string `json:"visibleTags"`
	HiddenTagCount int      `json:"hiddenTagCount"`
	TotalReturn    *float64 `json:"totalReturn"`
}

// Row derives the table row for r.
func (r IPORecord) Row() IPORow {
	visible, hidden := r.TagSummary()
	return IPORow{
		IPORecord:      r,
		StatusCategory: r.StatusCategory(),
		Public:         r.IsPublic(),
		VisibleTags:    visible,
		HiddenTagCount: hidden,
		TotalReturn:    r.TotalReturn(),
	}
}

// Rows derives table rows for records, preserving order.
func Rows(records []IPORecord) []IPORow {
	rows := make([]IPORow, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return rows
}

// Float is a helper for building records with nullable metrics.
func Float(v float64) *float64 {
	return &v
}
