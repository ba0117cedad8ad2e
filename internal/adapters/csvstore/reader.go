package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"park_reviews/internal/domain"
)

// Column headers expected in the dataset. Extra columns are ignored and
// header matching is case-insensitive.
const (
	colPark      = "Branch"
	colRating    = "Rating"
	colLocation  = "Reviewer_Location"
	colYearMonth = "Year_Month"
)

// ReadReviews loads the whole CSV dataset into memory. The first record is
// the header row; field positions are resolved from it. Rating is
// normalized to an integer (non-digit or missing -> 0); all other fields
// keep their raw values.
func ReadReviews(path string) ([]domain.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvstore: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate short rows; missing fields read as empty

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csvstore: read header: %w", err)
	}
	cols := indexColumns(header)

	var rows []domain.Review
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvstore: read record: %w", err)
		}
		rows = append(rows, domain.Review{
			Park:      field(rec, cols[colPark]),
			Rating:    normalizeRating(field(rec, cols[colRating])),
			Location:  field(rec, cols[colLocation]),
			YearMonth: field(rec, cols[colYearMonth]),
		})
	}

	log.Info().Str("path", path).Int("rows", len(rows)).Msg("dataset loaded")
	return rows, nil
}

func indexColumns(header []string) map[string]int {
	idx := map[string]int{colPark: -1, colRating: -1, colLocation: -1, colYearMonth: -1}
	for i, name := range header {
		name = strings.TrimSpace(name)
		for want := range idx {
			if strings.EqualFold(name, want) {
				idx[want] = i
			}
		}
	}
	return idx
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// normalizeRating parses a rating cell to an int. Anything that is not a
// plain run of digits (after trimming) falls back to 0: empty cells,
// signs, decimals, junk text.
func normalizeRating(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
