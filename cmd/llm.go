package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/scrape"
)

// PRODUCT_PROMPT asks the model for product information instead of the full
// extraction structure.
const PRODUCT_PROMPT = `Extract the following information from this webpage and return as JSON:

{
    "product_name": "name of the main product or service",
    "description": "brief description of what this website offers",
    "key_features": ["list of main features or capabilities"],
    "target_audience": "who this product is for",
    "pricing_info": "any pricing information available",
    "contact_info": "how to contact or get support"
}

Return ONLY valid JSON, no additional text.`

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Extract product information with a custom prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLLM(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(llmCmd)
}

func runLLM(ctx context.Context) error {
	formats, err := exampleFormats([]output.Format{output.FormatJSON})
	if err != nil {
		return err
	}

	scraper, cleanup, err := newScraper()
	if err != nil {
		return err
	}
	defer cleanup()

	result := scraper.Scrape(ctx, flags.url, scrape.Options{
		Strategy: scrape.StrategyLLM,
		Formats:  formats,
		Prompt:   PRODUCT_PROMPT,
	})

	return report(result)
}
