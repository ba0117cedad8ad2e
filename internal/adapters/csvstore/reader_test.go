package csvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestReadReviews(t *testing.T) {
	path := writeDataset(t, "Review_ID,Rating,Year_Month,Reviewer_Location,Branch\n"+
		"1,5,2019-3,United States,Disneyland_Paris\n"+
		"2,bad,2020-1,France,Disneyland_Paris\n"+
		"3,4,,United Kingdom,Disneyland_HongKong\n")

	rows, err := ReadReviews(path)
	if err != nil {
		t.Fatalf("ReadReviews: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Park != "Disneyland_Paris" || rows[0].Rating != 5 || rows[0].Location != "United States" || rows[0].YearMonth != "2019-3" {
		t.Fatalf("row 0 mismatch: %+v", rows[0])
	}
	// non-numeric rating normalizes to 0, never errors
	if rows[1].Rating != 0 {
		t.Fatalf("row 1 rating: got %d, want 0", rows[1].Rating)
	}
	if rows[2].YearMonth != "" {
		t.Fatalf("row 2 year-month: got %q, want empty", rows[2].YearMonth)
	}
}

func TestReadReviews_ShortRows(t *testing.T) {
	path := writeDataset(t, "Branch,Rating,Reviewer_Location,Year_Month\n"+
		"Disneyland_Paris,3\n")

	rows, err := ReadReviews(path)
	if err != nil {
		t.Fatalf("ReadReviews: %v", err)
	}
	if len(rows) != 1 || rows[0].Location != "" || rows[0].YearMonth != "" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestReadReviews_MissingFile(t *testing.T) {
	if _, err := ReadReviews(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizeRating(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{" 4 ", 4},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"3.5", 0},
		{"10", 10},
	}
	for _, c := range cases {
		if got := normalizeRating(c.in); got != c.want {
			t.Errorf("normalizeRating(%q): got %d, want %d", c.in, got, c.want)
		}
	}
}
