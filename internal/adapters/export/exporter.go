package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"park_reviews/internal/adapters/observability"
	"park_reviews/internal/domain"
)

// Column order shared by the CSV and Excel exports. Names must stay exactly
// as consumers of the reports expect them.
var reportHeader = []string{
	"ParkName",
	"NumberOfReviews",
	"NumberOfPositiveReviews",
	"AverageReviewScore",
	"NumberOfUniqueCountries",
}

const excelSheet = "Summaries"

// Exporter writes park summary reports into a target directory.
type Exporter struct {
	dir string
}

// New returns an Exporter rooted at dir, creating it if needed.
func New(dir string) (*Exporter, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create output dir: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

// resolvePath applies the filename fallbacks: blank -> "report", extension
// appended when missing (case-insensitive check).
func (e *Exporter) resolvePath(filename, ext string) string {
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "report"
	}
	if !strings.HasSuffix(strings.ToLower(name), ext) {
		name += ext
	}
	return filepath.Join(e.dir, name)
}

// ExportText writes a human-readable block per summary. An empty summary
// list still succeeds and writes a "No data to report." trailer.
func (e *Exporter) ExportText(summaries []domain.ParkSummary, filename string) (string, error) {
	path := e.resolvePath(filename, ".txt")

	var b strings.Builder
	title := "Theme Park Aggregated Report"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	if len(summaries) == 0 {
		b.WriteString("No data to report.\n")
	}
	for _, s := range summaries {
		fmt.Fprintf(&b, "ParkName: %s\n", s.Park)
		fmt.Fprintf(&b, "NumberOfReviews: %d\n", s.Reviews)
		fmt.Fprintf(&b, "NumberOfPositiveReviews: %d\n", s.PositiveReviews)
		fmt.Fprintf(&b, "AverageReviewScore: %s\n", formatScore(s.AverageScore))
		fmt.Fprintf(&b, "NumberOfUniqueCountries: %d\n", s.UniqueCountries)
		b.WriteString(strings.Repeat("-", 30) + "\n")
	}

	err := os.WriteFile(path, []byte(b.String()), 0o644)
	observability.ObserveExport("text", err)
	if err != nil {
		return path, fmt.Errorf("export: write text report: %w", err)
	}
	log.Info().Str("path", path).Int("parks", len(summaries)).Msg("text report written")
	return path, nil
}

// ExportCSV writes the exact report header followed by one row per summary.
func (e *Exporter) ExportCSV(summaries []domain.ParkSummary, filename string) (string, error) {
	path := e.resolvePath(filename, ".csv")

	f, err := os.Create(path)
	if err != nil {
		observability.ObserveExport("csv", err)
		return path, fmt.Errorf("export: create csv report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		observability.ObserveExport("csv", err)
		return path, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, s := range summaries {
		row := []string{
			s.Park,
			strconv.Itoa(s.Reviews),
			strconv.Itoa(s.PositiveReviews),
			formatScore(s.AverageScore),
			strconv.Itoa(s.UniqueCountries),
		}
		if err := w.Write(row); err != nil {
			observability.ObserveExport("csv", err)
			return path, fmt.Errorf("export: write csv row: %w", err)
		}
	}
	w.Flush()
	err = w.Error()
	observability.ObserveExport("csv", err)
	if err != nil {
		return path, fmt.Errorf("export: flush csv report: %w", err)
	}
	log.Info().Str("path", path).Int("parks", len(summaries)).Msg("csv report written")
	return path, nil
}

// ExportJSON writes the summaries as a JSON array with 2-space indentation.
func (e *Exporter) ExportJSON(summaries []domain.ParkSummary, filename string) (string, error) {
	path := e.resolvePath(filename, ".json")

	if summaries == nil {
		summaries = []domain.ParkSummary{} // encode as [] rather than null
	}
	b, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		observability.ObserveExport("json", err)
		return path, fmt.Errorf("export: marshal summaries: %w", err)
	}
	err = os.WriteFile(path, b, 0o644)
	observability.ObserveExport("json", err)
	if err != nil {
		return path, fmt.Errorf("export: write json report: %w", err)
	}
	log.Info().Str("path", path).Int("parks", len(summaries)).Msg("json report written")
	return path, nil
}

// ExportExcel writes the summaries to a single-sheet workbook with the same
// header row as the CSV report.
func (e *Exporter) ExportExcel(summaries []domain.ParkSummary, filename string) (string, error) {
	path := e.resolvePath(filename, ".xlsx")

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName(f.GetSheetName(0), excelSheet)

	for col, name := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(excelSheet, cell, name); err != nil {
			observability.ObserveExport("xlsx", err)
			return path, fmt.Errorf("export: write excel header: %w", err)
		}
	}
	for i, s := range summaries {
		values := []any{s.Park, s.Reviews, s.PositiveReviews, s.AverageScore, s.UniqueCountries}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				observability.ObserveExport("xlsx", err)
				return path, fmt.Errorf("export: write excel row: %w", err)
			}
		}
	}

	err := f.SaveAs(path)
	observability.ObserveExport("xlsx", err)
	if err != nil {
		return path, fmt.Errorf("export: save workbook: %w", err)
	}
	log.Info().Str("path", path).Int("parks", len(summaries)).Msg("excel report written")
	return path, nil
}

// formatScore renders an average without trailing zeros (3.5 not 3.50),
// matching the text and CSV report format.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
