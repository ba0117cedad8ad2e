package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	chart "github.com/wcharczuk/go-chart/v2"

	"park_reviews/internal/domain"
)

// Renderer renders aggregation results as PNG files in a target directory.
type Renderer struct {
	dir string
}

// New returns a Renderer rooted at dir, creating it if needed.
func New(dir string) (*Renderer, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}
	return &Renderer{dir: dir}, nil
}

func (r *Renderer) resolvePath(filename string) string {
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "chart"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".png") {
		name += ".png"
	}
	return filepath.Join(r.dir, name)
}

// PieReviewCounts renders a pie chart of review counts per park.
func (r *Renderer) PieReviewCounts(counts []domain.ParkCount, filename string) (string, error) {
	total := 0
	for _, pc := range counts {
		total += pc.Count
	}
	if len(counts) == 0 || total == 0 {
		return "", fmt.Errorf("charts: no data to plot")
	}

	values := make([]chart.Value, 0, len(counts))
	for _, pc := range counts {
		values = append(values, chart.Value{
			Value: float64(pc.Count),
			Label: fmt.Sprintf("%s (%d)", pc.Park, pc.Count),
		})
	}
	pie := chart.PieChart{
		Title:  "Number of Reviews per Park",
		Width:  640,
		Height: 640,
		Values: values,
	}
	return r.render(filename, pie.Render)
}

// BarTopLocations renders a bar chart of average rating per reviewer
// location for one park. Averages are baked into the bar labels in place of
// above-bar annotations.
func (r *Renderer) BarTopLocations(park string, locations []domain.LocationAverage, filename string) (string, error) {
	if len(locations) == 0 {
		return "", fmt.Errorf("charts: no data to plot")
	}

	bars := make([]chart.Value, 0, len(locations))
	for _, la := range locations {
		bars = append(bars, chart.Value{
			Value: la.Average,
			Label: fmt.Sprintf("%s (%.2f)", la.Location, la.Average),
		})
	}
	return r.renderBars(fmt.Sprintf("Top %d Locations by Avg Rating for %s", len(locations), park), bars, filename)
}

// BarMonthlyAverage renders a bar chart of the mean rating per month for
// one park.
func (r *Renderer) BarMonthlyAverage(park string, months []domain.MonthAverage, filename string) (string, error) {
	if len(months) == 0 {
		return "", fmt.Errorf("charts: no data to plot")
	}

	bars := make([]chart.Value, 0, len(months))
	for _, ma := range months {
		bars = append(bars, chart.Value{
			Value: ma.Average,
			Label: fmt.Sprintf("%s (%.2f)", ma.Month, ma.Average),
		})
	}
	return r.renderBars(fmt.Sprintf("Average Rating per Month for %s", park), bars, filename)
}

func (r *Renderer) renderBars(title string, bars []chart.Value, filename string) (string, error) {
	bc := chart.BarChart{
		Title:    title,
		Width:    960,
		Height:   512,
		BarWidth: 48,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 5},
		},
		Bars: bars,
	}
	return r.render(filename, bc.Render)
}

func (r *Renderer) render(filename string, renderFn func(chart.RendererProvider, io.Writer) error) (string, error) {
	path := r.resolvePath(filename)
	f, err := os.Create(path)
	if err != nil {
		return path, fmt.Errorf("charts: create %q: %w", path, err)
	}
	defer f.Close()

	if err := renderFn(chart.PNG, f); err != nil {
		return path, fmt.Errorf("charts: render: %w", err)
	}
	log.Info().Str("path", path).Msg("chart written")
	return path, nil
}
