package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "park_reviews/internal/adapters/http_server"
	"park_reviews/internal/domain"
)

func newTestServer(t *testing.T, rows []domain.Review) *httptest.Server {
	t.Helper()
	srv := httpserver.New(5*time.Second, 1000)
	srv.MountHandlers(&httpserver.Handlers{Rows: rows, TopN: 10})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func sampleRows() []domain.Review {
	return []domain.Review{
		{Park: "A", Rating: 5, Location: "US", YearMonth: "2019-03"},
		{Park: "A", Rating: 2, Location: "US", YearMonth: "2020-03"},
		{Park: "B", Rating: 4, Location: "UK", YearMonth: "2019-07"},
	}
}

func getJSON(t *testing.T, url string, dst any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status: %d", resp.StatusCode)
	}
}

func TestParkSummaries(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var summaries []map[string]any
	resp := getJSON(t, ts.URL+"/v1/parks", &summaries)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	first := summaries[0]
	if first["ParkName"] != "A" || first["NumberOfReviews"].(float64) != 2 || first["AverageReviewScore"].(float64) != 3.5 {
		t.Fatalf("unexpected first summary: %+v", first)
	}
}

func TestReviewsByPark(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var reviews []map[string]any
	getJSON(t, ts.URL+"/v1/parks/a/reviews", &reviews)
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews for park a, got %d", len(reviews))
	}

	// a miss is an empty list, not an error
	var empty []map[string]any
	resp := getJSON(t, ts.URL+"/v1/parks/nowhere/reviews", &empty)
	if resp.StatusCode != http.StatusOK || len(empty) != 0 {
		t.Fatalf("miss: status %d, %d reviews", resp.StatusCode, len(empty))
	}
}

func TestReviewCount(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var out map[string]any
	getJSON(t, ts.URL+"/v1/parks/A/reviews/count?location=us", &out)
	if out["count"].(float64) != 2 {
		t.Fatalf("count: %+v", out)
	}

	resp := getJSON(t, ts.URL+"/v1/parks/A/reviews/count", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing location should 400, got %d", resp.StatusCode)
	}
}

func TestYearlyAverage(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var out map[string]any
	resp := getJSON(t, ts.URL+"/v1/parks/A/ratings/yearly?year=2019", &out)
	if resp.StatusCode != http.StatusOK || out["average"].(float64) != 5 {
		t.Fatalf("status %d, out %+v", resp.StatusCode, out)
	}

	resp = getJSON(t, ts.URL+"/v1/parks/A/ratings/yearly?year=2018", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("no-data year should 404, got %d", resp.StatusCode)
	}

	resp = getJSON(t, ts.URL+"/v1/parks/A/ratings/yearly?year=19", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short year should 400, got %d", resp.StatusCode)
	}
}

func TestMonthlyAverages(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var months []map[string]any
	getJSON(t, ts.URL+"/v1/parks/A/ratings/monthly", &months)
	if len(months) != 1 {
		t.Fatalf("expected 1 month, got %+v", months)
	}
	if months[0]["month"] != "March" || months[0]["average"].(float64) != 3.5 {
		t.Fatalf("unexpected month entry: %+v", months[0])
	}
}

func TestTopLocations(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var locs []map[string]any
	getJSON(t, ts.URL+"/v1/parks/A/locations/top?n=5", &locs)
	if len(locs) != 1 || locs[0]["location"] != "US" {
		t.Fatalf("unexpected locations: %+v", locs)
	}

	resp := getJSON(t, ts.URL+"/v1/parks/A/locations/top?n=0", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid n should 400, got %d", resp.StatusCode)
	}
}

func TestReviewCountsStats(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	var counts []map[string]any
	getJSON(t, ts.URL+"/v1/stats/review-counts", &counts)
	if len(counts) != 2 || counts[0]["park"] != "A" || counts[0]["count"].(float64) != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestETagNotModified(t *testing.T) {
	ts := newTestServer(t, sampleRows())

	resp, err := http.Get(ts.URL + "/v1/parks")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("expected ETag header")
	}

	req, _ := http.NewRequest("GET", ts.URL+"/v1/parks", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", resp2.StatusCode)
	}
}
