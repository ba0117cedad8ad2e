package domain

// SummaryExporter writes park summaries to a file in a given format.
// Each method resolves the target path (blank filename falls back to
// "report", the format's extension is appended when missing) and returns
// it alongside any write error.
type SummaryExporter interface {
	ExportText(summaries []ParkSummary, filename string) (string, error)
	ExportCSV(summaries []ParkSummary, filename string) (string, error)
	ExportJSON(summaries []ParkSummary, filename string) (string, error)
	ExportExcel(summaries []ParkSummary, filename string) (string, error)
}

// ChartRenderer renders aggregation results as chart image files.
type ChartRenderer interface {
	PieReviewCounts(counts []ParkCount, filename string) (string, error)
	BarTopLocations(park string, locations []LocationAverage, filename string) (string, error)
	BarMonthlyAverage(park string, months []MonthAverage, filename string) (string, error)
}
