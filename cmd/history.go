package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scrapes from the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of rows to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory() error {
	if flags.historyDB == "" {
		return errors.New("no history database configured, set --history-db")
	}

	hist, err := history.NewStore(flags.historyDB)
	if err != nil {
		return err
	}
	defer hist.Close()

	records, err := hist.Recent(historyLimit)
	if err != nil {
		return err
	}

	tbl := table.New("Scraped At", "URL", "Strategy", "Success", "Files", "Duration")
	for _, record := range records {
		tbl.AddRow(
			record.ScrapedAt.Local().Format(time.RFC3339),
			record.URL,
			record.Strategy,
			record.Success,
			len(record.Files),
			record.Duration,
		)
	}
	tbl.Print()

	return nil
}
