package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultCeilingYear is the latest year the dataset covers; open-ended ranges stop here.
const DefaultCeilingYear = 2025

var (
	yearRangePattern = regexp.MustCompile(`^(\d{4})(?:\s*-\s*(\d{4}))?$`)
	openRangePattern = regexp.MustCompile(`^(\d{4})\s*-$`)
	listTokenPattern = regexp.MustCompile(`^(\d{4})(?:\D.*)?$`)
)

// Query is the structured form of a raw search string. It is exactly one of
// NoConstraint, YearQuery or TextQuery.
type Query interface {
	isQuery()
	String() string
}

// NoConstraint matches every record (blank search).
type NoConstraint struct{}

// YearQuery matches records whose IPO year is in Years (sorted, unique).
type YearQuery struct {
	Years []int
}

// TextQuery matches records whose company, ticker or any tag contains Term.
// Term is already lower-cased.
type TextQuery struct {
	Term string
}

func (NoConstraint) isQuery() {}
func (YearQuery) isQuery()    {}
func (TextQuery) isQuery()    {}

func (NoConstraint) String() string { return "all" }

func (q YearQuery) String() string {
	parts := make([]string, len(q.Years))
	for i, y := range q.Years {
		parts[i] = strconv.Itoa(y)
	}
	return "years:" + strings.Join(parts, ",")
}

func (q TextQuery) String() string { return fmt.Sprintf("text:%q", q.Term) }

// Contains reports whether year is part of the query.
func (q YearQuery) Contains(year int) bool {
	i := sort.SearchInts(q.Years, year)
	return i < len(q.Years) && q.Years[i] == year
}

// ParseQuery interprets a raw search string. Year-shaped input is tried first
// (range, list, open range); anything that yields no valid year is a text query.
func ParseQuery(raw string, ceiling int) Query {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NoConstraint{}
	}

	if years, ok := parseYearQuery(trimmed, ceiling); ok {
		return YearQuery{Years: years}
	}

	return TextQuery{Term: strings.ToLower(trimmed)}
}

func parseYearQuery(s string, ceiling int) ([]int, bool) {
	var years []int

	switch {
	case yearRangePattern.MatchString(s):
		m := yearRangePattern.FindStringSubmatch(s)
		start, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		end := start
		if m[2] != "" {
			if end, err = strconv.Atoi(m[2]); err != nil {
				return nil, false
			}
		}
		years = yearSpan(start, end)

	case strings.Contains(s, ","):
		for _, token := range strings.Split(s, ",") {
			// A token keeps its leading four-digit year, so "2020-2021" counts as 2020.
			m := listTokenPattern.FindStringSubmatch(strings.TrimSpace(token))
			if m == nil {
				continue
			}
			year, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			years = append(years, year)
		}

	case openRangePattern.MatchString(s):
		m := openRangePattern.FindStringSubmatch(s)
		start, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, false
		}
		years = yearSpan(start, ceiling)
	}

	years = uniqueSorted(years)
	return years, len(years) > 0
}

// yearSpan is the inclusive range [start, end]; empty when start > end.
func yearSpan(start, end int) []int {
	if start > end {
		return nil
	}
	years := make([]int, 0, end-start+1)
	for y := start; y <= end; y++ {
		years = append(years, y)
	}
	return years
}

func uniqueSorted(years []int) []int {
	if len(years) == 0 {
		return nil
	}
	sort.Ints(years)
	out := years[:1]
	for _, y := range years[1:] {
		if y != out[len(out)-1] {
			out = append(out, y)
		}
	}
	return out
}
