package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/scrape"
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "Scrape without the model: markdown plus a simple JSON structure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimple(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(simpleCmd)
}

func runSimple(ctx context.Context) error {
	formats, err := exampleFormats([]output.Format{output.FormatMarkdown, output.FormatJSON})
	if err != nil {
		return err
	}

	scraper, cleanup, err := newScraper()
	if err != nil {
		return err
	}
	defer cleanup()

	result := scraper.Scrape(ctx, flags.url, scrape.Options{
		Strategy: scrape.StrategySimple,
		Formats:  formats,
	})

	return report(result)
}
