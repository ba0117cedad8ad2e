package app

import (
	"math"
	"sort"
	"strings"

	"park_reviews/internal/domain"
)

// BuildParkSummaries derives one ParkSummary per distinct trimmed non-empty
// park name: total reviews, positive reviews (rating >= 4), average score
// rounded to 2 decimals, and the number of distinct non-empty trimmed
// reviewer locations (case-sensitive). A park appears only if at least one
// row references it, so every group divides by a count >= 1. Output is
// sorted by park name ascending.
func BuildParkSummaries(rows []domain.Review) []domain.ParkSummary {
	totals := make(map[string]int)
	positive := make(map[string]int)
	ratingSum := make(map[string]int)
	countries := make(map[string]map[string]struct{})

	for _, r := range rows {
		park := strings.TrimSpace(r.Park)
		if park == "" {
			continue
		}

		totals[park]++
		ratingSum[park] += r.Rating
		if r.Positive() {
			positive[park]++
		}
		if loc := strings.TrimSpace(r.Location); loc != "" {
			if countries[park] == nil {
				countries[park] = make(map[string]struct{})
			}
			countries[park][loc] = struct{}{}
		}
	}

	parks := make([]string, 0, len(totals))
	for park := range totals {
		parks = append(parks, park)
	}
	sort.Strings(parks)

	summaries := make([]domain.ParkSummary, 0, len(parks))
	for _, park := range parks {
		n := totals[park]
		summaries = append(summaries, domain.ParkSummary{
			Park:            park,
			Reviews:         n,
			PositiveReviews: positive[park],
			AverageScore:    round2(float64(ratingSum[park]) / float64(n)),
			UniqueCountries: len(countries[park]),
		})
	}
	return summaries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
