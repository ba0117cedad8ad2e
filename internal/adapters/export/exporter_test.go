package export_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"park_reviews/internal/adapters/export"
	"park_reviews/internal/domain"
)

func sampleSummaries() []domain.ParkSummary {
	return []domain.ParkSummary{
		{Park: "A", Reviews: 2, PositiveReviews: 1, AverageScore: 3.5, UniqueCountries: 1},
		{Park: "B", Reviews: 1, PositiveReviews: 1, AverageScore: 4, UniqueCountries: 1},
	}
}

func newExporter(t *testing.T) (*export.Exporter, string) {
	t.Helper()
	dir := t.TempDir()
	e, err := export.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, dir
}

func TestExportText(t *testing.T) {
	e, dir := newExporter(t)

	path, err := e.ExportText(sampleSummaries(), "out")
	if err != nil {
		t.Fatalf("ExportText: %v", err)
	}
	if path != filepath.Join(dir, "out.txt") {
		t.Fatalf("resolved path: %q", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	got := string(b)
	for _, want := range []string{
		"ParkName: A",
		"NumberOfReviews: 2",
		"NumberOfPositiveReviews: 1",
		"AverageReviewScore: 3.5",
		"NumberOfUniqueCountries: 1",
		"ParkName: B",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q:\n%s", want, got)
		}
	}
}

func TestExportText_Empty(t *testing.T) {
	e, _ := newExporter(t)

	path, err := e.ExportText(nil, "empty")
	if err != nil {
		t.Fatalf("ExportText on empty summaries should succeed: %v", err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "No data to report.") {
		t.Fatalf("expected empty-report trailer, got:\n%s", b)
	}
}

func TestExportCSV(t *testing.T) {
	e, _ := newExporter(t)

	path, err := e.ExportCSV(sampleSummaries(), "summary.csv")
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	b, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if lines[0] != "ParkName,NumberOfReviews,NumberOfPositiveReviews,AverageReviewScore,NumberOfUniqueCountries" {
		t.Fatalf("header mismatch: %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[1] != "A,2,1,3.5,1" {
		t.Fatalf("row mismatch: %q", lines[1])
	}
}

func TestExportJSON(t *testing.T) {
	e, _ := newExporter(t)

	path, err := e.ExportJSON(sampleSummaries(), "report")
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.HasSuffix(path, "report.json") {
		t.Fatalf("extension not appended: %q", path)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "  \"ParkName\": \"A\"") {
		t.Fatalf("expected 2-space indented ParkName field:\n%s", b)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(decoded))
	}
	if decoded[0]["NumberOfReviews"].(float64) != 2 {
		t.Fatalf("unexpected first object: %+v", decoded[0])
	}
}

func TestExportJSON_EmptyIsArray(t *testing.T) {
	e, _ := newExporter(t)

	path, err := e.ExportJSON(nil, "empty")
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	b, _ := os.ReadFile(path)
	if strings.TrimSpace(string(b)) != "[]" {
		t.Fatalf("expected empty array, got %q", b)
	}
}

func TestExportExcel(t *testing.T) {
	e, _ := newExporter(t)

	path, err := e.ExportExcel(sampleSummaries(), "workbook")
	if err != nil {
		t.Fatalf("ExportExcel: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Summaries")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ParkName" || rows[0][4] != "NumberOfUniqueCountries" {
		t.Fatalf("header mismatch: %v", rows[0])
	}
	if rows[1][0] != "A" {
		t.Fatalf("first data row mismatch: %v", rows[1])
	}
}

func TestResolvePathFallbacks(t *testing.T) {
	e, dir := newExporter(t)

	// blank filename falls back to "report"
	path, err := e.ExportText(nil, "   ")
	if err != nil {
		t.Fatalf("ExportText: %v", err)
	}
	if path != filepath.Join(dir, "report.txt") {
		t.Fatalf("blank filename: got %q", path)
	}

	// extension check is case-insensitive
	path, err = e.ExportCSV(nil, "Upper.CSV")
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if path != filepath.Join(dir, "Upper.CSV") {
		t.Fatalf("extension duplicated: got %q", path)
	}
}

func TestExportFailureReturnsPath(t *testing.T) {
	dir := t.TempDir()
	e, err := export.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// make the directory unwritable so creation fails
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0o755)

	path, err := e.ExportCSV(sampleSummaries(), "blocked")
	if err == nil {
		t.Skip("running with permissions that allow the write (e.g. root)")
	}
	if !strings.HasSuffix(path, "blocked.csv") {
		t.Fatalf("attempted path should be returned alongside the error, got %q", path)
	}
}
