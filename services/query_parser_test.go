package services

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Query
	}{
		{"single year", "2020", YearQuery{Years: []int{2020}}},
		{"closed range", "2020-2023", YearQuery{Years: []int{2020, 2021, 2022, 2023}}},
		{"range with spaces", " 2020 - 2022 ", YearQuery{Years: []int{2020, 2021, 2022}}},
		{"list", "2020,2022", YearQuery{Years: []int{2020, 2022}}},
		{"list with spaces and duplicates", "2022, 2020 ,2022", YearQuery{Years: []int{2020, 2022}}},
		{"open range", "2020-", YearQuery{Years: []int{2020, 2021, 2022, 2023, 2024, 2025}}},
		{"open range at ceiling", "2025-", YearQuery{Years: []int{2025}}},
		{"free text", "abc", TextQuery{Term: "abc"}},
		{"free text is lower-cased", "  SnowFlake ", TextQuery{Term: "snowflake"}},
		{"empty", "", NoConstraint{}},
		{"whitespace", "   \t ", NoConstraint{}},
		{"list drops malformed tokens", "2020,20x1,abc", YearQuery{Years: []int{2020}}},
		{"list keeps leading year of range token", "2020-2021,2023", YearQuery{Years: []int{2020, 2023}}},
		{"list with no valid years is text", "20x0,abc", TextQuery{Term: "20x0,abc"}},
		{"inverted range is text", "2023-2020", TextQuery{Term: "2023-2020"}},
		{"open range past ceiling is text", "2030-", TextQuery{Term: "2030-"}},
		{"three digit number is text", "202", TextQuery{Term: "202"}},
		{"year with text is text", "AI 2020", TextQuery{Term: "ai 2020"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.input, DefaultCeilingYear))
		})
	}
}

func TestParseQueryUsesCeiling(t *testing.T) {
	q, ok := ParseQuery("2024-", 2026).(YearQuery)
	require.True(t, ok)
	assert.Equal(t, []int{2024, 2025, 2026}, q.Years)
}

func TestQueryString(t *testing.T) {
	assert.Equal(t, "all", NoConstraint{}.String())
	assert.Equal(t, "years:2020,2021", YearQuery{Years: []int{2020, 2021}}.String())
	assert.Equal(t, `text:"rpa"`, TextQuery{Term: "rpa"}.String())
}

func TestYearQueryContains(t *testing.T) {
	q := YearQuery{Years: []int{2019, 2021, 2023}}
	assert.True(t, q.Contains(2021))
	assert.False(t, q.Contains(2020))
	assert.False(t, q.Contains(2024))
}

func TestParseQueryProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("closed ranges cover exactly start..end", prop.ForAll(
		func(start, length int) bool {
			end := start + length
			q, ok := ParseQuery(strconv.Itoa(start)+"-"+strconv.Itoa(end), DefaultCeilingYear).(YearQuery)
			if !ok || len(q.Years) != length+1 {
				return false
			}
			for i, y := range q.Years {
				if y != start+i {
					return false
				}
			}
			return true
		},
		gen.IntRange(1990, 2030),
		gen.IntRange(0, 10),
	))

	properties.Property("year sets are sorted and unique", prop.ForAll(
		func(years []int) bool {
			raw := ""
			for i, y := range years {
				if i > 0 {
					raw += ","
				}
				raw += strconv.Itoa(y)
			}
			q, ok := ParseQuery(raw+",", DefaultCeilingYear).(YearQuery)
			if !ok {
				return false
			}
			for i := 1; i < len(q.Years); i++ {
				if q.Years[i] <= q.Years[i-1] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.IntRange(2000, 2030)),
	))

	properties.Property("non-blank input never yields NoConstraint", prop.ForAll(
		func(s string) bool {
			_, isNone := ParseQuery("x"+s, DefaultCeilingYear).(NoConstraint)
			return !isNone
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
