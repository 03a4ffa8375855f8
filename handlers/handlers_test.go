package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func testRecords() []models.IPORecord {
	return []models.IPORecord{
		{Company: "Snowflake", Ticker: "SNOW", Year: 2020, IPOPrice: models.Float(120), CurrentPrice: models.Float(180),
			Status: "Public", Tags: []string{"Data", "Cloud"}},
		{Company: "UiPath", Ticker: "PATH", Year: 2019, IPOPrice: models.Float(56), AcquisitionPrice: models.Float(70),
			Status: "Acquired by X", Tags: []string{"RPA"}},
		{Company: "Datadog", Ticker: "DDOG", Year: 2019, IPOPrice: models.Float(27), CurrentPrice: models.Float(120),
			Status: "Public", Tags: []string{"Observability"}},
	}
}

func setupApp(t *testing.T) (*fiber.App, *services.CachedDashboardService) {
	t.Helper()

	store, err := services.NewDatasetStore(testRecords(), "test")
	require.NoError(t, err)

	dashboard := services.NewDashboardService(store, 2025).WithClock(func() time.Time {
		return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	})
	cached := services.NewCachedDashboardService(dashboard, services.NewCacheService(time.Minute, 100))
	utility := services.NewUtilityService()

	app := fiber.New()
	New(cached, services.NewHTMLImporter(utility), utility).Register(app, true)
	return app, cached
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, apiResponse) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(body, &parsed), string(body))
	return resp.StatusCode, parsed
}

func TestGetIPOsDefaultOrder(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos", nil))
	require.Equal(t, http.StatusOK, status)
	require.True(t, resp.Success)

	var view services.DashboardView
	require.NoError(t, json.Unmarshal(resp.Data, &view))

	tickers := make([]string, 0, len(view.Records))
	for _, r := range view.Records {
		tickers = append(tickers, r.Ticker)
	}
	assert.Equal(t, []string{"SNOW", "DDOG", "PATH"}, tickers)
	assert.Equal(t, 3, view.Total)

	snow := view.Records[0]
	assert.Equal(t, models.StatusPublic, snow.StatusCategory)
	assert.Equal(t, []string{"Data", "Cloud"}, snow.VisibleTags)
	assert.Zero(t, snow.HiddenTagCount)
	require.NotNil(t, snow.TotalReturn)
	assert.InDelta(t, 50.0, *snow.TotalReturn, 1e-9)

	path := view.Records[2]
	assert.Equal(t, models.StatusAcquired, path.StatusCategory)
	assert.False(t, path.Public)
	require.NotNil(t, path.TotalReturn)
	assert.InDelta(t, 25.0, *path.TotalReturn, 1e-9)
	assert.Equal(t, "all", view.Query)
	assert.Len(t, view.Suggestions, len(services.DefaultSuggestions()))
}

func TestGetIPOsYearFilter(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?q=2020", nil))
	require.Equal(t, http.StatusOK, status)

	var view services.DashboardView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "SNOW", view.Records[0].Ticker)
	assert.Equal(t, 1, view.Count)
}

func TestGetIPOsTagFilterWithSort(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?q=RPA&sort=company&dir=ascending", nil))
	require.Equal(t, http.StatusOK, status)

	var view services.DashboardView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "PATH", view.Records[0].Ticker)
}

func TestGetIPOsRejectsUnknownSort(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?sort=marketCap", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "marketCap")
	assert.Equal(t, "INVALID_SORT_FIELD", resp.Code)

	status, resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?dir=sideways", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SORT_DIRECTION", resp.Code)
}

func TestGetSuggestions(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/suggestions?q=sno", nil))
	require.Equal(t, http.StatusOK, status)

	var suggestions []models.Suggestion
	require.NoError(t, json.Unmarshal(resp.Data, &suggestions))
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "SNOW", suggestions[0].Value)
	assert.Equal(t, models.SuggestionTicker, suggestions[0].Category)
}

func TestChartsEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/charts/yearly", nil))
	require.Equal(t, http.StatusOK, status)

	var counts []models.YearCount
	require.NoError(t, json.Unmarshal(resp.Data, &counts))
	require.NotEmpty(t, counts)
	assert.Equal(t, services.FirstSuggestedYear, counts[0].Year)

	status, resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/charts/scatter?x=ipoPrice&y=totalReturn", nil))
	require.Equal(t, http.StatusOK, status)

	var points []models.ScatterPoint
	require.NoError(t, json.Unmarshal(resp.Data, &points))
	assert.Len(t, points, 3)

	status, resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/charts/scatter?x=company", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SCATTER_AXES", resp.Code)

	status, resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/charts/scatter?y=marketCap", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_SCATTER_AXIS", resp.Code)
}

func TestReplaceDatasetJSON(t *testing.T) {
	app, cached := setupApp(t)
	before := cached.Dashboard().Store().Snapshot().Revision

	body := `[{"company":"Confluent","ticker":"CFLT","year":2021,"status":"Public","tags":["Data"]}]`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/dataset", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, resp := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.True(t, resp.Success)

	snapshot := cached.Dashboard().Store().Snapshot()
	assert.NotEqual(t, before, snapshot.Revision)
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "upload:json", snapshot.Source)

	_, resp = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos", nil))
	var view services.DashboardView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "CFLT", view.Records[0].Ticker)
}

func TestReplaceDatasetHTML(t *testing.T) {
	app, cached := setupApp(t)

	body := `<table>
<tr><th>Company</th><th>Ticker</th><th>Year</th><th>IPO Price</th></tr>
<tr><td>MongoDB</td><td>MDB</td><td>2017</td><td>$24.00</td></tr>
</table>`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/dataset", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	status, resp := doRequest(t, app, req)
	require.Equal(t, http.StatusOK, status, resp.Error)

	snapshot := cached.Dashboard().Store().Snapshot()
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "MDB", snapshot.Records[0].Ticker)
	require.NotNil(t, snapshot.Records[0].IPOPrice)
	assert.Equal(t, 24.0, *snapshot.Records[0].IPOPrice)
}

func TestReplaceDatasetRejectsInvalidRecords(t *testing.T) {
	app, cached := setupApp(t)
	before := cached.Dashboard().Store().Snapshot().Revision

	body := `[{"company":"","ticker":"BAD","year":2021}]`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/dataset", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_DATASET", resp.Code)
	assert.Equal(t, before, cached.Dashboard().Store().Snapshot().Revision)
}

func TestReplaceDatasetRejectsMalformedBody(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/dataset", strings.NewReader(`{not json`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, resp.Success)
}

func TestMetricsAndHealth(t *testing.T) {
	app, _ := setupApp(t)

	doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?q=2019", nil))
	doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?q=2019", nil))

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	require.Equal(t, http.StatusOK, status)

	var metrics struct {
		Dashboard struct {
			TotalRequests int64            `json:"total_requests"`
			Counters      map[string]int64 `json:"counters"`
		} `json:"dashboard"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &metrics))
	assert.Equal(t, int64(1), metrics.Dashboard.TotalRequests)
	assert.Equal(t, int64(1), metrics.Dashboard.Counters["cache_hits"])
	assert.Equal(t, int64(1), metrics.Dashboard.Counters["cache_misses"])

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestResetMetrics(t *testing.T) {
	app, cached := setupApp(t)

	doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/ipos?q=2020", nil))
	require.Equal(t, int64(1), cached.Dashboard().GetServiceMetrics().Snapshot().TotalRequests)

	status, resp := doRequest(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/metrics", nil))
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)

	snapshot := cached.Dashboard().GetServiceMetrics().Snapshot()
	assert.Zero(t, snapshot.TotalRequests)
	assert.Empty(t, snapshot.Counters)
}
