package services

import (
	"time"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sampleRecords() []models.IPORecord {
	return []models.IPORecord{
		{Company: "Snowflake", Ticker: "SNOW", Year: 2020, IPOPrice: models.Float(120), CurrentPrice: models.Float(180),
			FirstDayPop: 111.6, Year1Return: models.Float(33.9), Year3AnnualizedReturn: models.Float(-12.6),
			Status: "Public", Tags: []string{"Data", "Cloud"}},
		{Company: "UiPath", Ticker: "PATH", Year: 2019, IPOPrice: models.Float(56), AcquisitionPrice: models.Float(70),
			FirstDayPop: 23.2, Year1Return: models.Float(-71.4),
			Status: "Acquired by X", Tags: []string{"RPA"}},
		{Company: "Datadog", Ticker: "DDOG", Year: 2019, IPOPrice: models.Float(27), CurrentPrice: models.Float(128.9),
			FirstDayPop: 39.1, Year1Return: models.Float(148.6), Year3AnnualizedReturn: models.Float(42.7),
			Status: "Public", Tags: []string{"Observability", "Cloud"}},
		{Company: "CrowdStrike", Ticker: "CRWD", Year: 2019, IPOPrice: models.Float(34), CurrentPrice: models.Float(372.2),
			FirstDayPop: 70.6, Year1Return: models.Float(110.5), Year3AnnualizedReturn: models.Float(61.2),
			Status: "Public", Tags: []string{"Security", "AI Security"}},
		{Company: "Arm Holdings", Ticker: "ARM", Year: 2023, IPOPrice: models.Float(51), CurrentPrice: models.Float(139.6),
			FirstDayPop: 24.7, Year1Return: models.Float(162.4),
			Status: "Public", Tags: []string{"AI"}},
		{Company: "Slack Technologies", Ticker: "WORK", Year: 2019, IPOPrice: models.Float(26), AcquisitionPrice: models.Float(45.86),
			FirstDayPop: 48.5, Year1Return: models.Float(12.7),
			Status: "Acquired by Salesforce (2021)", Tags: []string{"Collaboration"}},
	}
}

func tickers(records []models.IPORecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Ticker
	}
	return out
}

func rowTickers(rows []models.IPORow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Ticker
	}
	return out
}

// genOptionalFloat yields nil roughly half the time.
func genOptionalFloat(min, max float64) gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.Float64Range(min, max)).Map(func(values []interface{}) *float64 {
		if values[0].(bool) {
			return nil
		}
		return models.Float(values[1].(float64))
	})
}

func genRecord() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("Snowflake", "Datadog", "CrowdStrike", "UiPath", "Confluent", "Slack", "MongoDB"),
		gen.OneConstOf("SNOW", "DDOG", "CRWD", "PATH", "CFLT", "WORK", "MDB"),
		gen.IntRange(2008, 2026),
		gen.Float64Range(0, 200),
		genOptionalFloat(0, 400),
		genOptionalFloat(-100, 300),
		genOptionalFloat(-60, 120),
		gen.OneConstOf("Public", "Acquired by Salesforce (2021)", "Merged with Rival", "Delisted", "Re-IPO", "Acquired"),
		gen.SliceOf(gen.OneConstOf("AI", "Data", "Cloud", "Security", "RPA", "AI Security")),
	).Map(func(values []interface{}) models.IPORecord {
		return models.IPORecord{
			Company:               values[0].(string),
			Ticker:                values[1].(string),
			Year:                  values[2].(int),
			IPOPrice:              models.Float(values[3].(float64)),
			CurrentPrice:          values[4].(*float64),
			Year1Return:           values[5].(*float64),
			Year3AnnualizedReturn: values[6].(*float64),
			Status:                values[7].(string),
			Tags:                  values[8].([]string),
		}
	})
}

func genRecords() gopter.Gen {
	return gen.SliceOf(genRecord())
}

func genSortField() gopter.Gen {
	fields := make([]interface{}, 0, len(models.SortFields()))
	for _, f := range models.SortFields() {
		fields = append(fields, f)
	}
	return gen.OneConstOf(fields...)
}

func genDirection() gopter.Gen {
	return gen.OneConstOf(models.Ascending, models.Descending)
}

func genSearch() gopter.Gen {
	return gen.OneConstOf("", "  ", "2020", "2019-2021", "2020, 2022", "2021-", "snow", "AI", "cloud", "RPA", "abc", "20x0", "2025-2020", "1")
}
