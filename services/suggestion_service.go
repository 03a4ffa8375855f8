package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/models"
)

const (
	// MaxSuggestions caps the autocomplete list.
	MaxSuggestions = 10
	// FirstSuggestedYear is the earliest year offered as a year suggestion.
	FirstSuggestedYear = 2010
)

var numericQueryPattern = regexp.MustCompile(`^\d{1,4}$`)

// defaultSuggestions is shown before the user has typed anything.
var defaultSuggestions = []models.Suggestion{
	{Value: "2020", Display: "2020", Category: models.SuggestionYear},
	{Value: "2021", Display: "2021", Category: models.SuggestionYear},
	{Value: "2019-2021", Display: "2019 to 2021", Category: models.SuggestionYearRange},
	{Value: "AI", Display: "AI", Category: models.SuggestionTag},
	{Value: "Security", Display: "Security", Category: models.SuggestionTag},
	{Value: "Cloud", Display: "Cloud", Category: models.SuggestionTag},
	{Value: "Data", Display: "Data", Category: models.SuggestionTag},
	{Value: "SNOW", Display: "SNOW - Snowflake", Category: models.SuggestionTicker},
	{Value: "CRWD", Display: "CRWD - CrowdStrike", Category: models.SuggestionTicker},
	{Value: "DDOG", Display: "DDOG - Datadog", Category: models.SuggestionTicker},
}

// DefaultSuggestions returns a copy of the cold-start list.
func DefaultSuggestions() []models.Suggestion {
	out := make([]models.Suggestion, len(defaultSuggestions))
	copy(out, defaultSuggestions)
	return out
}

// GenerateSuggestions builds the autocomplete list for raw: matching companies,
// then matching tags, then matching years, truncated to MaxSuggestions.
// now supplies the current year for year suggestions.
func GenerateSuggestions(raw string, records []models.IPORecord, now time.Time) []models.Suggestion {
	query := strings.TrimSpace(raw)
	if query == "" {
		return DefaultSuggestions()
	}

	lowerQuery := strings.ToLower(query)
	suggestions := []models.Suggestion{}

	suggestions = append(suggestions, companySuggestions(lowerQuery, records)...)
	suggestions = append(suggestions, tagSuggestions(lowerQuery, records)...)
	if numericQueryPattern.MatchString(query) {
		suggestions = append(suggestions, yearSuggestions(query, now.Year())...)
	}

	if len(suggestions) > MaxSuggestions {
		suggestions = suggestions[:MaxSuggestions]
	}
	return suggestions
}

func companySuggestions(lowerQuery string, records []models.IPORecord) []models.Suggestion {
	var out []models.Suggestion
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Company), lowerQuery) ||
			strings.Contains(strings.ToLower(r.Ticker), lowerQuery) {
			out = append(out, models.Suggestion{
				Value:    r.Ticker,
				Display:  fmt.Sprintf("%s — %s", r.Ticker, r.Company),
				Category: models.SuggestionTicker,
			})
		}
	}
	return out
}

// tagSuggestions emits each distinct tag once, in first-seen order, with the
// number of records carrying it.
func tagSuggestions(lowerQuery string, records []models.IPORecord) []models.Suggestion {
	var order []string
	counts := make(map[string]int)
	for _, r := range records {
		for _, tag := range r.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	var out []models.Suggestion
	for _, tag := range order {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			out = append(out, models.Suggestion{
				Value:    tag,
				Display:  fmt.Sprintf("%s (%d)", tag, counts[tag]),
				Category: models.SuggestionTag,
			})
		}
	}
	return out
}

func yearSuggestions(digits string, currentYear int) []models.Suggestion {
	var out []models.Suggestion
	for y := FirstSuggestedYear; y <= currentYear; y++ {
		year := strconv.Itoa(y)
		if strings.HasPrefix(year, digits) {
			out = append(out, models.Suggestion{
				Value:    year,
				Display:  year,
				Category: models.SuggestionYear,
			})
		}
	}

	if len(digits) == 4 {
		out = append(out, models.Suggestion{
			Value:    fmt.Sprintf("%s-%d", digits, currentYear),
			Display:  fmt.Sprintf("%s to %d", digits, currentYear),
			Category: models.SuggestionYearRange,
		})
	}
	return out
}
