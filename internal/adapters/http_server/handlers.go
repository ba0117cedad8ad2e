package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"park_reviews/internal/adapters/observability"
	"park_reviews/internal/app"
	"park_reviews/internal/domain"
)

// Handlers serves the read-only aggregation API over the in-memory dataset.
// Rows are loaded once at startup and never mutated, so handlers need no
// locking; every request recomputes its aggregate from scratch.
type Handlers struct {
	Rows []domain.Review
	TopN int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/parks", h.parkSummaries)
	s.mux.Get("/v1/parks/{park}/reviews", h.reviewsByPark)
	s.mux.Get("/v1/parks/{park}/reviews/count", h.reviewCount)
	s.mux.Get("/v1/parks/{park}/ratings/yearly", h.yearlyAverage)
	s.mux.Get("/v1/parks/{park}/ratings/monthly", h.monthlyAverages)
	s.mux.Get("/v1/parks/{park}/locations/top", h.topLocations)
	s.mux.Get("/v1/stats/review-counts", h.reviewCounts)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with ETag handling; If-None-Match short-circuits to 304.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) parkSummaries(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("park_summaries")
	writeJSON(w, r, app.BuildParkSummaries(h.Rows))
}

func (h *Handlers) reviewsByPark(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("filter_by_park")
	park := chi.URLParam(r, "park")
	reviews := app.FilterByPark(h.Rows, park)
	if reviews == nil {
		reviews = []domain.Review{} // a miss is an empty list, not an error
	}
	writeJSON(w, r, reviews)
}

func (h *Handlers) reviewCount(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("count_by_park_and_location")
	location := r.URL.Query().Get("location")
	if location == "" {
		writeProblem(w, http.StatusBadRequest, "Missing location", "query parameter 'location' is required")
		return
	}
	park := chi.URLParam(r, "park")
	writeJSON(w, r, map[string]any{
		"park":     park,
		"location": location,
		"count":    app.CountByParkAndLocation(h.Rows, park, location),
	})
}

func (h *Handlers) yearlyAverage(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("average_rating_for_park_in_year")
	year := r.URL.Query().Get("year")
	if len(year) != 4 {
		writeProblem(w, http.StatusBadRequest, "Invalid year", "query parameter 'year' must be a 4-digit year")
		return
	}
	if _, err := strconv.Atoi(year); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid year", "query parameter 'year' must be a 4-digit year")
		return
	}
	park := chi.URLParam(r, "park")
	avg, ok := app.AverageRatingForParkInYear(h.Rows, park, year)
	if !ok {
		writeProblem(w, http.StatusNotFound, "No Data", "no reviews for this park in that year")
		return
	}
	writeJSON(w, r, map[string]any{"park": park, "year": year, "average": avg})
}

func (h *Handlers) monthlyAverages(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("average_monthly_rating")
	park := chi.URLParam(r, "park")
	byMonth := app.AverageMonthlyRatingIgnoringYear(h.Rows, park)

	// calendar order, omitting months with no observations
	months := make([]domain.MonthAverage, 0, len(byMonth))
	for _, name := range app.MonthNames() {
		if avg, found := byMonth[name]; found {
			months = append(months, domain.MonthAverage{Month: name, Average: avg})
		}
	}
	writeJSON(w, r, months)
}

func (h *Handlers) topLocations(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("top_locations_by_average_rating")
	topN := h.TopN
	if ns := r.URL.Query().Get("n"); ns != "" {
		n, err := strconv.Atoi(ns)
		if err != nil || n <= 0 || n > 100 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "n must be an integer between 1 and 100")
			return
		}
		topN = n
	}
	park := chi.URLParam(r, "park")
	locs := app.TopLocationsByAverageRating(h.Rows, park, topN)
	if locs == nil {
		locs = []domain.LocationAverage{}
	}
	writeJSON(w, r, locs)
}

func (h *Handlers) reviewCounts(w http.ResponseWriter, r *http.Request) {
	observability.ObserveQuery("review_counts_by_park")
	counts := app.ReviewCountsByPark(h.Rows)
	if counts == nil {
		counts = []domain.ParkCount{}
	}
	writeJSON(w, r, counts)
}
