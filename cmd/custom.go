package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/scrape"
)

// TECHNICAL_PROMPT focuses the extraction on developer-facing details.
const TECHNICAL_PROMPT = `Extract technical information from this webpage and return as JSON:

{
    "technologies": ["list of technologies, frameworks, or tools mentioned"],
    "api_endpoints": ["list of API endpoints if any"],
    "installation": "installation or setup instructions",
    "dependencies": ["list of dependencies or requirements"],
    "deployment": "deployment or hosting information",
    "documentation": "links to documentation or guides"
}

Focus on technical details, code examples, and developer information.
Return ONLY valid JSON.`

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Extract technical details with a custom prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCustom(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(customCmd)
}

func runCustom(ctx context.Context) error {
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
		Prompt:   TECHNICAL_PROMPT,
	})

	return report(result)
}
