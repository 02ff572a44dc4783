package scrape

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/rodaine/table"

	"github.com/pagesift/pagesift/output"
)

// SummaryRow is one line of the batch CSV export.
type SummaryRow struct {
	URL       string `csv:"url"`
	Strategy  string `csv:"strategy"`
	Success   bool   `csv:"success"`
	Error     string `csv:"error"`
	Files     string `csv:"files"`
	ScrapedAt string `csv:"scraped_at"`
}

// ExportCSV writes one row per result into the given directory and returns
// the file path.
func ExportCSV(dir string, results []*Result) (string, error) {
	rows := make([]SummaryRow, 0, len(results))
	for _, result := range results {
		row := SummaryRow{
			URL:       result.URL,
			Strategy:  string(result.Strategy),
			Success:   result.Success,
			Files:     strings.Join(savedPaths(result), " "),
			ScrapedAt: result.Metadata.ScrapedAt.Format(time.RFC3339),
		}
		if result.Error != nil {
			row.Error = result.Error.Message
		}
		rows = append(rows, row)
	}

	path := filepath.Join(dir, "scraping_summary_"+time.Now().Format(output.TIMESTAMP_LAYOUT)+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", path)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return "", errors.Wrap(err, "failed to export results to CSV")
	}

	return path, nil
}

// PrintResults prints one table row per scraped URL to stdout.
func PrintResults(results []*Result) {
	tbl := table.New("URL", "Strategy", "Success", "Files", "Error")
	for _, result := range results {
		msg := ""
		if result.Error != nil {
			msg = result.Error.Message
		}
		tbl.AddRow(result.URL, result.Strategy, result.Success, len(result.SavedFiles), msg)
	}
	tbl.Print()
}

func savedPaths(result *Result) []string {
	paths := make([]string, 0, len(result.SavedFiles))
	for _, path := range result.SavedFiles {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
