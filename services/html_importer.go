package services

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// columnAliases maps normalised header labels to record fields.
var columnAliases = map[string]models.SortField{
	"company":                  models.SortCompany,
	"company name":             models.SortCompany,
	"name":                     models.SortCompany,
	"ticker":                   models.SortTicker,
	"symbol":                   models.SortTicker,
	"year":                     models.SortYear,
	"ipo year":                 models.SortYear,
	"ipo price":                models.SortIPOPrice,
	"offer price":              models.SortIPOPrice,
	"first day price":          models.SortFirstDayPrice,
	"first day close":          models.SortFirstDayPrice,
	"first day pop":            models.SortFirstDayPop,
	"day one pop":              models.SortFirstDayPop,
	"current price":            models.SortCurrentPrice,
	"1y return":                models.SortYear1Return,
	"1 year return":            models.SortYear1Return,
	"3y annualized":            models.SortYear3AnnualizedReturn,
	"3y annualized return":     models.SortYear3AnnualizedReturn,
	"3 year annualized return": models.SortYear3AnnualizedReturn,
	"1y vs igv":                models.SortYear1Outperformance,
	"1y outperformance":        models.SortYear1Outperformance,
	"3y vs igv":                models.SortYear3Outperformance,
	"3y outperformance":        models.SortYear3Outperformance,
	"status":                   models.SortStatus,
}

// Columns that have no sort field of their own.
const (
	acquisitionColumn = "acquisition price"
	tagsColumn        = "tags"
)

// HTMLImporter builds a record collection from an HTML table export of the dataset.
type HTMLImporter struct {
	utility *UtilityService
}

// NewHTMLImporter creates an importer
func NewHTMLImporter(utility *UtilityService) *HTMLImporter {
	if utility == nil {
		utility = NewUtilityService()
	}
	return &HTMLImporter{utility: utility}
}

// Import parses the first table with recognised headers from r.
func (i *HTMLImporter) Import(r io.Reader) ([]models.IPORecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryProcessing, "HTML_PARSE_FAILED",
			"failed to parse HTML dataset", "HTMLImporter", "Import", false, err)
	}

	var records []models.IPORecord
	found := false
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if recs, ok := i.parseTable(table); ok {
			records, found = recs, true
			return false
		}
		return true
	})

	if !found {
		return nil, noTableError("Import")
	}
	return records, nil
}

// ImportFile loads a local .html export through a colly collector with a file transport.
func (i *HTMLImporter) ImportFile(path string) ([]models.IPORecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryConfiguration, "INVALID_PATH",
			fmt.Sprintf("invalid dataset path %q", path), "HTMLImporter", "ImportFile", false, err)
	}

	transport := &http.Transport{}
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))

	c := colly.NewCollector()
	c.WithTransport(transport)

	var records []models.IPORecord
	found := false
	c.OnHTML("table", func(e *colly.HTMLElement) {
		if found {
			return
		}
		if recs, ok := i.parseTable(e.DOM); ok {
			records, found = recs, true
		}
	})

	if err := c.Visit("file://" + filepath.ToSlash(abs)); err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryProcessing, "HTML_READ_FAILED",
			fmt.Sprintf("failed to read %s", abs), "HTMLImporter", "ImportFile", false, err)
	}
	c.Wait()

	if !found {
		return nil, noTableError("ImportFile")
	}

	logrus.WithFields(logrus.Fields{
		"component": "HTMLImporter",
		"path":      abs,
		"records":   len(records),
	}).Info("Imported dataset from HTML export")

	return records, nil
}

func noTableError(operation string) error {
	return shared.NewServiceError(shared.ErrorCategoryValidation, "NO_DATASET_TABLE",
		"no table with company, ticker and year columns found", "HTMLImporter", operation, false, nil)
}

// parseTable reads a header row and the data rows under it. ok is false when the
// table lacks the company, ticker or year columns.
func (i *HTMLImporter) parseTable(table *goquery.Selection) ([]models.IPORecord, bool) {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return nil, false
	}

	var columns []string
	rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		columns = append(columns, i.utility.NormalizeLabel(cell.Text()))
	})

	if !hasRequiredColumns(columns) {
		return nil, false
	}

	records := make([]models.IPORecord, 0, rows.Length()-1)
	skipped := 0
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		record := i.parseRow(columns, row.Find("td"))
		if record.Ticker == "" || record.Company == "" || record.Year == 0 {
			skipped++
			return
		}
		records = append(records, record)
	})

	if skipped > 0 {
		logrus.WithFields(logrus.Fields{
			"component": "HTMLImporter",
			"skipped":   skipped,
			"imported":  len(records),
		}).Warn("Skipped rows missing company, ticker or year")
	}

	return records, true
}

func hasRequiredColumns(columns []string) bool {
	have := make(map[models.SortField]bool)
	for _, c := range columns {
		if field, ok := columnAliases[c]; ok {
			have[field] = true
		}
	}
	return have[models.SortCompany] && have[models.SortTicker] && have[models.SortYear]
}

func (i *HTMLImporter) parseRow(columns []string, cells *goquery.Selection) models.IPORecord {
	var record models.IPORecord
	u := i.utility

	cells.Each(func(idx int, cell *goquery.Selection) {
		if idx >= len(columns) {
			return
		}
		text := u.NormalizeTextContent(cell.Text())

		switch columns[idx] {
		case acquisitionColumn:
			record.AcquisitionPrice = u.ParsePrice(text)
			return
		case tagsColumn:
			record.Tags = u.SplitTags(text)
			return
		}

		field, ok := columnAliases[columns[idx]]
		if !ok {
			return
		}

		switch field {
		case models.SortCompany:
			record.Company = text
		case models.SortTicker:
			record.Ticker = u.NormalizeSymbol(text)
		case models.SortYear:
			record.Year = u.ParseYear(text)
		case models.SortStatus:
			record.Status = text
		case models.SortIPOPrice:
			record.IPOPrice = u.ParsePrice(text)
		case models.SortFirstDayPrice:
			record.FirstDayPrice = u.ParsePrice(text)
		case models.SortCurrentPrice:
			record.CurrentPrice = u.ParsePrice(text)
		case models.SortFirstDayPop:
			if pop := u.ExtractSignedPercentage(text); pop != nil {
				record.FirstDayPop = *pop
			}
		case models.SortYear1Return:
			record.Year1Return = u.ExtractSignedPercentage(text)
		case models.SortYear3AnnualizedReturn:
			record.Year3AnnualizedReturn = u.ExtractSignedPercentage(text)
		case models.SortYear1Outperformance:
			record.Year1Outperformance = u.ExtractSignedPercentage(text)
		case models.SortYear3Outperformance:
			record.Year3Outperformance = u.ExtractSignedPercentage(text)
		}
	})

	if record.Status == "" {
		record.Status = models.StatusPublic
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	return record
}
