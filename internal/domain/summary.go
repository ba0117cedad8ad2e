package domain

// ParkSummary is the derived per-park aggregate. Field names in exports
// (JSON/CSV/Excel) must match the tags below exactly.
type ParkSummary struct {
	Park            string  `json:"ParkName"`
	Reviews         int     `json:"NumberOfReviews"`
	PositiveReviews int     `json:"NumberOfPositiveReviews"`
	AverageScore    float64 `json:"AverageReviewScore"`
	UniqueCountries int     `json:"NumberOfUniqueCountries"`
}

// ParkCount pairs a park name with its review count.
type ParkCount struct {
	Park  string `json:"park"`
	Count int    `json:"count"`
}

// LocationAverage pairs a reviewer location with a mean rating.
type LocationAverage struct {
	Location string  `json:"location"`
	Average  float64 `json:"average"`
}

// MonthAverage pairs a month name (January..December) with a mean rating.
type MonthAverage struct {
	Month   string  `json:"month"`
	Average float64 `json:"average"`
}
