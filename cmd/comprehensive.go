package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/scrape"
)

var comprehensiveCmd = &cobra.Command{
	Use:   "comprehensive",
	Short: "Full extraction with every output format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runComprehensive(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(comprehensiveCmd)
}

func runComprehensive(ctx context.Context) error {
	formats, err := exampleFormats(output.All())
	if err != nil {
		return err
	}

	scraper, cleanup, err := newScraper()
	if err != nil {
		return err
	}
	defer cleanup()

	result := scraper.Scrape(ctx, flags.url, scrape.Options{
		Strategy: scrape.StrategyComprehensive,
		Formats:  formats,
	})

	return report(result)
}
