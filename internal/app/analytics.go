package app

import (
	"sort"
	"strconv"
	"strings"

	"park_reviews/internal/domain"
)

// Aggregation functions over the in-memory review table. All of them are
// pure: they re-scan the slice on every call and never mutate it.
//
// Two normalization policies coexist and are intentional: filter-style
// lookups (FilterByPark, CountByParkAndLocation, year/month averages) fold
// case and trim whitespace before comparing, while grouping functions
// (ReviewCountsByPark, per-park/location averages, summaries) group on the
// raw trimmed value, case-sensitively.

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterByPark returns the reviews whose park matches, case-insensitively
// and whitespace-trimmed, preserving input order.
func FilterByPark(rows []domain.Review, park string) []domain.Review {
	target := norm(park)
	var out []domain.Review
	for _, r := range rows {
		if norm(r.Park) == target {
			out = append(out, r)
		}
	}
	return out
}

// CountByParkAndLocation counts reviews matching both park and reviewer
// location, case-insensitively.
func CountByParkAndLocation(rows []domain.Review, park, location string) int {
	parkN, locN := norm(park), norm(location)
	count := 0
	for _, r := range rows {
		if norm(r.Park) == parkN && norm(r.Location) == locN {
			count++
		}
	}
	return count
}

// AverageRatingForParkInYear computes the mean rating for a park across
// reviews whose Year_Month starts with the given year. ok is false when no
// review matches, which is distinct from an average of zero.
func AverageRatingForParkInYear(rows []domain.Review, park, year string) (avg float64, ok bool) {
	parkN := norm(park)
	total, count := 0, 0
	for _, r := range rows {
		if norm(r.Park) != parkN {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(r.YearMonth), year) {
			total += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}

// ReviewCountsByPark groups reviews by trimmed non-empty park name and
// returns (park, count) pairs sorted by count descending. Ties keep
// first-seen dataset order (the sort is stable over insertion order).
func ReviewCountsByPark(rows []domain.Review) []domain.ParkCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range rows {
		park := strings.TrimSpace(r.Park)
		if park == "" {
			continue
		}
		if _, seen := counts[park]; !seen {
			order = append(order, park)
		}
		counts[park]++
	}

	out := make([]domain.ParkCount, 0, len(order))
	for _, park := range order {
		out = append(out, domain.ParkCount{Park: park, Count: counts[park]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DefaultTopLocations is the cutoff used when TopLocationsByAverageRating
// is called with a non-positive limit.
const DefaultTopLocations = 10

// TopLocationsByAverageRating computes, for one park (case-insensitive
// match), the mean rating per trimmed reviewer location and returns the
// best topN, sorted by average descending with ties broken by ascending
// location name.
func TopLocationsByAverageRating(rows []domain.Review, park string, topN int) []domain.LocationAverage {
	if topN <= 0 {
		topN = DefaultTopLocations
	}
	parkN := norm(park)
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range rows {
		if norm(r.Park) != parkN {
			continue
		}
		loc := strings.TrimSpace(r.Location)
		if loc == "" {
			continue
		}
		sums[loc] += r.Rating
		counts[loc]++
	}

	avgs := make([]domain.LocationAverage, 0, len(counts))
	for loc, count := range counts {
		avgs = append(avgs, domain.LocationAverage{
			Location: loc,
			Average:  float64(sums[loc]) / float64(count),
		})
	}
	sortByAverageDesc(avgs)
	if len(avgs) > topN {
		avgs = avgs[:topN]
	}
	return avgs
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthNames returns the twelve month names in calendar order, matching the
// keys produced by AverageMonthlyRatingIgnoringYear.
func MonthNames() []string { return monthNames[:] }

// AverageMonthlyRatingIgnoringYear computes the mean rating per calendar
// month for one park, folding all years together. A Year_Month value must
// split on "-" into exactly two parts with the second an integer in 1..12;
// anything else is skipped. Months with no observations are omitted.
func AverageMonthlyRatingIgnoringYear(rows []domain.Review, park string) map[string]float64 {
	parkN := norm(park)
	var totals, counts [12]int

	for _, r := range rows {
		if norm(r.Park) != parkN {
			continue
		}
		parts := strings.Split(strings.TrimSpace(r.YearMonth), "-")
		if len(parts) != 2 {
			continue
		}
		month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || month < 1 || month > 12 {
			continue
		}
		totals[month-1] += r.Rating
		counts[month-1]++
	}

	out := make(map[string]float64)
	for i, name := range monthNames {
		if counts[i] > 0 {
			out[name] = float64(totals[i]) / float64(counts[i])
		}
	}
	return out
}

// AverageRatingByLocationForEachPark computes the mean rating for every
// (park, location) pair with both fields non-empty after trimming. Each
// park's slice is sorted by average descending, then location ascending.
func AverageRatingByLocationForEachPark(rows []domain.Review) map[string][]domain.LocationAverage {
	sums := make(map[string]map[string]int)
	counts := make(map[string]map[string]int)

	for _, r := range rows {
		park := strings.TrimSpace(r.Park)
		loc := strings.TrimSpace(r.Location)
		if park == "" || loc == "" {
			continue
		}
		if sums[park] == nil {
			sums[park] = make(map[string]int)
			counts[park] = make(map[string]int)
		}
		sums[park][loc] += r.Rating
		counts[park][loc]++
	}

	report := make(map[string][]domain.LocationAverage, len(sums))
	for park, locSums := range sums {
		avgs := make([]domain.LocationAverage, 0, len(locSums))
		for loc, total := range locSums {
			avgs = append(avgs, domain.LocationAverage{
				Location: loc,
				Average:  float64(total) / float64(counts[park][loc]),
			})
		}
		sortByAverageDesc(avgs)
		report[park] = avgs
	}
	return report
}

func sortByAverageDesc(avgs []domain.LocationAverage) {
	sort.Slice(avgs, func(i, j int) bool {
		if avgs[i].Average != avgs[j].Average {
			return avgs[i].Average > avgs[j].Average
		}
		return avgs[i].Location < avgs[j].Location
	})
}
