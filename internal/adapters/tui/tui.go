package tui

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"park_reviews/internal/app"
	"park_reviews/internal/domain"
)

// TUI drives the interactive menu loop over a reader/writer pair. All
// dataset logic lives in the app package; this adapter only prompts,
// validates input, and formats results.
type TUI struct {
	in       *bufio.Scanner
	out      io.Writer
	rows     []domain.Review
	exporter domain.SummaryExporter
	charts   domain.ChartRenderer
	topN     int
}

func New(in io.Reader, out io.Writer, rows []domain.Review, exporter domain.SummaryExporter, charts domain.ChartRenderer, topN int) *TUI {
	if topN <= 0 {
		topN = app.DefaultTopLocations
	}
	return &TUI{
		in:       bufio.NewScanner(in),
		out:      out,
		rows:     rows,
		exporter: exporter,
		charts:   charts,
		topN:     topN,
	}
}

// Run shows the title banner and loops on the main menu until the user
// exits or input ends.
func (t *TUI) Run() {
	t.showTitle("Disneyland Review Analyser")
	fmt.Fprintln(t.out, "Dataset has finished reading.")
	fmt.Fprintf(t.out, "There are %d rows in the dataset.\n\n", len(t.rows))

	for {
		choice, ok := t.menuMain()
		if !ok {
			return
		}
		switch choice {
		case "A":
			t.echoChoice("main", choice)
			t.viewData()
		case "B":
			t.echoChoice("main", choice)
			t.visualiseData()
		case "C":
			t.echoChoice("main", choice)
			t.exportData()
		case "X":
			fmt.Fprintln(t.out, "Exiting the application. Goodbye!")
			return
		default:
			fmt.Fprintln(t.out, "Invalid menu choice. Please try again.")
			fmt.Fprintln(t.out)
		}
	}
}

/********** menus **********/

var menuLabels = map[string]map[string]string{
	"main": {"A": "View Data", "B": "Visualise Data", "C": "Export Data", "X": "Exit"},
	"view": {
		"A": "View Reviews by Park",
		"B": "Number of Reviews by Park and Reviewer Location",
		"C": "Average Score per year by Park",
		"D": "Average Score per Park by Reviewer Location",
	},
	"visual": {
		"A": "Most Reviewed Parks",
		"B": "Park Ranking by Nationality",
		"C": "Most Popular Month by Park",
	},
	"export": {
		"T": "Export to Text (.txt)",
		"C": "Export to CSV (.csv)",
		"J": "Export to JSON (.json)",
		"E": "Export to Excel (.xlsx)",
	},
}

func (t *TUI) echoChoice(context, choice string) {
	if label, ok := menuLabels[context][choice]; ok {
		fmt.Fprintf(t.out, "You have chosen option %s - %s\n\n", choice, label)
	}
}

func (t *TUI) menuMain() (string, bool) {
	fmt.Fprintln(t.out, "Please enter the letter which corresponds with your desired menu choice:")
	fmt.Fprintln(t.out, "[A] View Data")
	fmt.Fprintln(t.out, "[B] Visualise Data")
	fmt.Fprintln(t.out, "[C] Export Data")
	fmt.Fprintln(t.out, "[X] Exit")
	return t.promptChoice()
}

func (t *TUI) menuViewData() (string, bool) {
	fmt.Fprintln(t.out, "Please enter one of the following options:")
	fmt.Fprintln(t.out, "[A] View Reviews by Park")
	fmt.Fprintln(t.out, "[B] Number of Reviews by Park and Reviewer Location")
	fmt.Fprintln(t.out, "[C] Average Score per year by Park")
	fmt.Fprintln(t.out, "[D] Average Score per Park by Reviewer Location")
	return t.promptChoice()
}

func (t *TUI) menuVisualise() (string, bool) {
	fmt.Fprintln(t.out, "Please enter one of the following options:")
	fmt.Fprintln(t.out, "[A] Most Reviewed Parks")
	fmt.Fprintln(t.out, "[B] Park Ranking by Nationality")
	fmt.Fprintln(t.out, "[C] Most Popular Month by Park")
	return t.promptChoice()
}

func (t *TUI) menuExport() (string, bool) {
	fmt.Fprintln(t.out, "Please choose an export format:")
	fmt.Fprintln(t.out, "[T] Text File (.txt)")
	fmt.Fprintln(t.out, "[C] CSV File (.csv)")
	fmt.Fprintln(t.out, "[J] JSON File (.json)")
	fmt.Fprintln(t.out, "[E] Excel File (.xlsx)")
	return t.promptChoice()
}

/********** actions **********/

func (t *TUI) viewData() {
	choice, ok := t.menuViewData()
	if !ok {
		return
	}
	t.echoChoice("view", choice)
	switch choice {
	case "A":
		park, ok := t.askPark()
		if !ok {
			return
		}
		t.showReviews(app.FilterByPark(t.rows, park), park)
	case "B":
		park, ok := t.askPark()
		if !ok {
			return
		}
		location, ok := t.askLocation()
		if !ok {
			return
		}
		t.showReviewCount(park, location, app.CountByParkAndLocation(t.rows, park, location))
	case "C":
		park, ok := t.askPark()
		if !ok {
			return
		}
		year, ok := t.askYear()
		if !ok {
			return
		}
		avg, found := app.AverageRatingForParkInYear(t.rows, park, year)
		if !found {
			fmt.Fprintf(t.out, "No reviews found for '%s' in %s.\n\n", park, year)
			return
		}
		fmt.Fprintf(t.out, "\nThe average rating for '%s' in %s is: %.2f/5\n\n", park, year, avg)
	case "D":
		t.showAverageByLocationReport(app.AverageRatingByLocationForEachPark(t.rows))
	default:
		fmt.Fprintln(t.out, "Invalid menu choice. Please try again.")
		fmt.Fprintln(t.out)
	}
}

func (t *TUI) visualiseData() {
	choice, ok := t.menuVisualise()
	if !ok {
		return
	}
	t.echoChoice("visual", choice)
	switch choice {
	case "A":
		counts := app.ReviewCountsByPark(t.rows)
		path, err := t.charts.PieReviewCounts(counts, "most_reviewed_parks")
		t.showChartResult(path, err)
	case "B":
		park, ok := t.askPark()
		if !ok {
			return
		}
		locs := app.TopLocationsByAverageRating(t.rows, park, t.topN)
		path, err := t.charts.BarTopLocations(park, locs, "top_locations")
		t.showChartResult(path, err)
	case "C":
		park, ok := t.askPark()
		if !ok {
			return
		}
		byMonth := app.AverageMonthlyRatingIgnoringYear(t.rows, park)
		months := make([]domain.MonthAverage, 0, len(byMonth))
		for _, name := range app.MonthNames() {
			if avg, found := byMonth[name]; found {
				months = append(months, domain.MonthAverage{Month: name, Average: avg})
			}
		}
		path, err := t.charts.BarMonthlyAverage(park, months, "monthly_average")
		t.showChartResult(path, err)
	default:
		fmt.Fprintln(t.out, "Invalid menu choice. Please try again.")
		fmt.Fprintln(t.out)
	}
}

func (t *TUI) exportData() {
	choice, ok := t.menuExport()
	if !ok {
		return
	}
	t.echoChoice("export", choice)

	exportFn, found := map[string]func([]domain.ParkSummary, string) (string, error){
		"T": t.exporter.ExportText,
		"C": t.exporter.ExportCSV,
		"J": t.exporter.ExportJSON,
		"E": t.exporter.ExportExcel,
	}[choice]
	if !found {
		fmt.Fprintln(t.out, "Invalid menu choice. Please try again.")
		fmt.Fprintln(t.out)
		return
	}

	filename, ok := t.askFilename()
	if !ok {
		return
	}
	summaries := app.BuildParkSummaries(t.rows)
	path, err := exportFn(summaries, filename)
	if err != nil {
		fmt.Fprintf(t.out, "ERROR: export failed for %s\n\n", path)
		return
	}
	fmt.Fprintf(t.out, "Report exported to %s\n\n", path)
}

/********** prompts **********/

func (t *TUI) promptChoice() (string, bool) {
	fmt.Fprint(t.out, "> ")
	line, ok := t.readLine()
	return strings.ToUpper(line), ok
}

func (t *TUI) readLine() (string, bool) {
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *TUI) askNonEmpty(prompt string) (string, bool) {
	for {
		fmt.Fprint(t.out, prompt)
		value, ok := t.readLine()
		if !ok {
			return "", false
		}
		if value != "" {
			return value, true
		}
		fmt.Fprintln(t.out, "Input cannot be blank. Please try again.")
	}
}

func (t *TUI) askPark() (string, bool) {
	return t.askNonEmpty("Enter the Disneyland park name (e.g., 'Disneyland_Paris'): ")
}

func (t *TUI) askLocation() (string, bool) {
	return t.askNonEmpty("Enter the reviewer's location (e.g., 'United States'): ")
}

func (t *TUI) askFilename() (string, bool) {
	return t.askNonEmpty("Enter desired filename (e.g., 'report'): ")
}

func (t *TUI) askYear() (string, bool) {
	for {
		fmt.Fprint(t.out, "Enter the year (e.g., '2019'): ")
		year, ok := t.readLine()
		if !ok {
			return "", false
		}
		if isFourDigitYear(year) {
			return year, true
		}
		fmt.Fprintln(t.out, "Invalid year format. Please enter a 4-digit year.")
	}
}

func isFourDigitYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

/********** display **********/

func (t *TUI) showTitle(title string) {
	fmt.Fprintf(t.out, "\n%s\n", title)
	fmt.Fprintf(t.out, "%s\n\n", strings.Repeat("-", len(title)))
}

func (t *TUI) showReviews(reviews []domain.Review, park string) {
	if len(reviews) == 0 {
		fmt.Fprintf(t.out, "No reviews found for '%s'. Please check the park name.\n\n", park)
		return
	}

	fmt.Fprintf(t.out, "\n--- Reviews for %s (%d reviews) ---\n", park, len(reviews))
	for i, r := range reviews {
		fmt.Fprintf(t.out, "Review %d:\n", i+1)
		fmt.Fprintf(t.out, "  Rating: %d/5\n", r.Rating)
		fmt.Fprintf(t.out, "  Date: %s\n", orNA(r.YearMonth))
		fmt.Fprintf(t.out, "  Location: %s\n", orNA(r.Location))
		fmt.Fprintln(t.out, strings.Repeat("-", 22))
	}
	fmt.Fprintf(t.out, "%s\n\n", strings.Repeat("-", 42))
}

func (t *TUI) showReviewCount(park, location string, count int) {
	fmt.Fprintf(t.out, "\n'%s' received %d reviews from '%s'.\n\n", park, count, location)
	if count == 0 {
		fmt.Fprintln(t.out, "Tip: check spelling/capitalisation for park and location.")
		fmt.Fprintln(t.out)
	}
}

func (t *TUI) showAverageByLocationReport(report map[string][]domain.LocationAverage) {
	if len(report) == 0 {
		fmt.Fprintln(t.out, "No average score data available.")
		fmt.Fprintln(t.out)
		return
	}

	fmt.Fprintln(t.out, "\n--- Average Scores per Park by Reviewer Location ---")
	for _, park := range sortedKeys(report) {
		fmt.Fprintf(t.out, "\nPark: %s\n", park)
		rows := report[park]
		if len(rows) == 0 {
			fmt.Fprintln(t.out, "  No data available.")
			continue
		}
		for _, la := range rows {
			fmt.Fprintf(t.out, "  - %s: %.2f/5\n", la.Location, la.Average)
		}
	}
	fmt.Fprintf(t.out, "%s\n\n", strings.Repeat("-", 50))
}

func (t *TUI) showChartResult(path string, err error) {
	if err != nil {
		fmt.Fprintln(t.out, "No data to plot.")
		fmt.Fprintln(t.out)
		return
	}
	fmt.Fprintf(t.out, "Chart saved to %s\n\n", path)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func sortedKeys(m map[string][]domain.LocationAverage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
