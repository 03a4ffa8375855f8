package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/shared"
)

var (
	whitespacePattern     = regexp.MustCompile(`\s+`)
	currencyPattern       = regexp.MustCompile(`[₹$€£¥,]`)
	unsignedNumberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	signedNumberPattern   = regexp.MustCompile(`[+-]?\s*\d+\.?\d*`)
	labelPattern          = regexp.MustCompile(`[^a-z0-9]+`)
)

// UtilityService provides text normalisation and cell parsing for dataset imports
type UtilityService struct {
	serviceMetrics *shared.ServiceMetrics
}

// NewUtilityService creates a new utility service instance
func NewUtilityService() *UtilityService {
	return &UtilityService{
		serviceMetrics: shared.NewServiceMetrics("Utility_Service"),
	}
}

// NormalizeTextContent trims and collapses whitespace
func (s *UtilityService) NormalizeTextContent(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// IsNotAvailable checks if a cell holds a "no value" placeholder
func (s *UtilityService) IsNotAvailable(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))

	notAvailableValues := []string{
		"", "-", "--", "—", "n/a", "na", "nil", "null", "not available", "tbd",
	}

	for _, na := range notAvailableValues {
		if text == na {
			return true
		}
	}

	return false
}

// ParsePrice parses a non-negative monetary cell such as "$120.50" or "1,200".
// Placeholders and unparseable text yield nil.
func (s *UtilityService) ParsePrice(text string) *float64 {
	start := time.Now()
	text = s.NormalizeTextContent(text)
	if s.IsNotAvailable(text) {
		return nil
	}

	cleaned := strings.ReplaceAll(currencyPattern.ReplaceAllString(text, ""), " ", "")
	if !unsignedNumberPattern.MatchString(cleaned) {
		s.serviceMetrics.RecordRequest(false, time.Since(start))
		return nil
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		s.serviceMetrics.RecordRequest(false, time.Since(start))
		return nil
	}

	s.serviceMetrics.RecordRequest(true, time.Since(start))
	return &value
}

// ExtractSignedPercentage extracts percentage value with sign handling
// Preserves positive and negative signs in the result
func (s *UtilityService) ExtractSignedPercentage(text string) *float64 {
	text = strings.TrimSpace(text)
	if s.IsNotAvailable(text) {
		return nil
	}

	text = strings.ReplaceAll(text, "%", "")
	text = strings.ReplaceAll(text, ",", "")

	match := signedNumberPattern.FindString(text)
	if match == "" {
		return nil
	}

	// Remove spaces between sign and number
	match = strings.ReplaceAll(match, " ", "")

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	return &value
}

// ParseYear parses a four-digit year cell; returns 0 when absent.
func (s *UtilityService) ParseYear(text string) int {
	text = s.NormalizeTextContent(text)
	if len(text) < 4 {
		return 0
	}
	year, err := strconv.Atoi(text[:4])
	if err != nil {
		return 0
	}
	return year
}

// NormalizeSymbol upper-cases a ticker and strips everything but letters, digits and dots
func (s *UtilityService) NormalizeSymbol(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
}

// SplitTags splits a "Cloud, Data; AI" cell into trimmed, de-duplicated tags in order
func (s *UtilityService) SplitTags(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == ';' || r == '|' })

	tags := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		tag := s.NormalizeTextContent(f)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// NormalizeLabel lower-cases a header label and collapses punctuation to single spaces
func (s *UtilityService) NormalizeLabel(label string) string {
	label = strings.ToLower(s.NormalizeTextContent(label))
	return strings.TrimSpace(labelPattern.ReplaceAllString(label, " "))
}

// GetServiceMetrics returns parse success/failure metrics
func (s *UtilityService) GetServiceMetrics() *shared.ServiceMetrics {
	return s.serviceMetrics
}
