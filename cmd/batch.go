package cmd

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/scrape"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Scrape the target and two related URLs sequentially",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(ctx context.Context) error {
	formats, err := exampleFormats([]output.Format{output.FormatMarkdown, output.FormatJSON})
	if err != nil {
		return err
	}

	scraper, cleanup, err := newScraper()
	if err != nil {
		return err
	}
	defer cleanup()

	urls := []string{
		flags.url,
		"https://go.dev/doc",
		"https://github.com/golang/go",
	}

	summary, results := scraper.ScrapeBatch(ctx, urls, scrape.Options{
		Strategy: scrape.StrategyComprehensive,
		Formats:  formats,
	}, time.Duration(flags.delay)*time.Second)

	scrape.PrintResults(results)

	if flags.csv {
		path, err := scrape.ExportCSV(scraper.OutputDir(), results)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to export CSV")
		} else {
			logger.Info().Str("file", path).Msg("CSV summary saved")
		}
	}

	if summary.Failed > 0 {
		logger.Warn().
			Int("failed", summary.Failed).
			Strs("failed_urls", summary.FailedURLs).
			Msg("Some URLs failed")
	}
	if summary.Successful == 0 {
		return errors.New("all batch URLs failed")
	}

	return nil
}
