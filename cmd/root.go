package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pagesift/pagesift/cache"
	"github.com/pagesift/pagesift/config"
	"github.com/pagesift/pagesift/fetch"
	"github.com/pagesift/pagesift/history"
	"github.com/pagesift/pagesift/llm"
	"github.com/pagesift/pagesift/log"
	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/scrape"
)

// DEFAULT_TARGET is the URL every example scrapes unless --url says
// otherwise.
const DEFAULT_TARGET = "https://go.dev"

const DEFAULT_OUTPUT_DIR = "scraping_results"

type scrapeFlags struct {
	config    string
	url       string
	outputDir string
	formats   []string
	browser   bool
	delay     int
	model     string
	cacheDB   string
	historyDB string
	csv       bool
}

var (
	flags  scrapeFlags
	logger = log.NewLogger("cli")
)

var rootCmd = &cobra.Command{
	Use:   "pagesift",
	Short: "Scrape websites into markdown, JSON, HTML and raw dumps",
	Long: `pagesift fetches web pages and turns them into markdown documents,
structured JSON (optionally extracted by a language model through
OpenRouter), raw HTML and raw result dumps.

Run a named example, or no argument to run all of them against the target
URL.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAll(cmd.Context())
	},
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", config.DefaultConfigFile, "env-style config file with the OpenRouter settings")
	pf.StringVar(&flags.url, "url", DEFAULT_TARGET, "target URL to scrape")
	pf.StringVar(&flags.outputDir, "output-dir", DEFAULT_OUTPUT_DIR, "directory results are written to")
	pf.StringSliceVar(&flags.formats, "formats", nil, "output formats (markdown, json, html, raw, all); empty keeps each example's default")
	pf.BoolVar(&flags.browser, "browser", false, "fetch pages with a headless browser instead of plain HTTP")
	pf.IntVar(&flags.delay, "delay", 2, "seconds to wait between batch requests")
	pf.StringVar(&flags.model, "model", "", "override the configured model")
	pf.StringVar(&flags.cacheDB, "cache-db", "", "bbolt file caching fetched pages; empty disables the cache")
	pf.StringVar(&flags.historyDB, "history-db", "", "sqlite file recording scrape history; empty disables history")
	pf.BoolVar(&flags.csv, "csv", false, "also export batch results as CSV")
}

// newScraper builds the full stack for one example run: config, writer,
// fetcher (optionally browser-backed and cache-wrapped), completion client
// and history. The returned cleanup must run when the example is done.
func newScraper() (*scrape.Scraper, func(), error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, nil, err
	}
	if flags.model != "" {
		cfg.Model = flags.model
	}

	writer, err := output.NewWriter(flags.outputDir)
	if err != nil {
		return nil, nil, err
	}

	var fetcher fetch.Fetcher
	if flags.browser {
		fetcher = fetch.NewBrowserFetcher(fetch.DEFAULT_TIMEOUT)
	} else {
		fetcher = fetch.NewStaticFetcher(fetch.DEFAULT_TIMEOUT)
	}

	var pages *cache.PageCache
	if flags.cacheDB != "" {
		pages, err = cache.NewPageCache(flags.cacheDB)
		if err != nil {
			fetcher.Close()
			return nil, nil, err
		}
		fetcher = fetch.NewCachedFetcher(fetcher, pages)
	}

	var hist *history.Store
	if flags.historyDB != "" {
		hist, err = history.NewStore(flags.historyDB)
		if err != nil {
			fetcher.Close()
			if pages != nil {
				pages.Close()
			}
			return nil, nil, err
		}
	}

	completer := llm.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model)

	cleanup := func() {
		if err := fetcher.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close fetcher")
		}
		if pages != nil {
			if err := pages.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close page cache")
			}
		}
		if hist != nil {
			if err := hist.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close history")
			}
		}
	}

	return scrape.New(fetcher, completer, writer, hist), cleanup, nil
}

// exampleFormats resolves the formats for an example: --formats wins over
// the example's default. Parsing happens before anything is fetched.
func exampleFormats(defaults []output.Format) ([]output.Format, error) {
	if len(flags.formats) == 0 {
		return defaults, nil
	}
	return output.ParseFormats(flags.formats)
}

// report turns a single-URL result into the command's exit status.
func report(result *scrape.Result) error {
	if !result.Success {
		return errors.Errorf("scraping %s failed: %s", result.URL, result.Error.Message)
	}

	logger.Info().
		Str("url", result.URL).
		Int("content_length", result.Metadata.RawContentLength).
		Int("files", len(result.SavedFiles)).
		Msg("Example finished")

	return nil
}

// runAll runs every example in order, continuing past failures.
func runAll(ctx context.Context) error {
	examples := []struct {
		name string
		run  func(context.Context) error
	}{
		{"simple", runSimple},
		{"llm", runLLM},
		{"comprehensive", runComprehensive},
		{"batch", runBatch},
		{"custom", runCustom},
	}

	logger.Info().Str("target", flags.url).Str("output_dir", flags.outputDir).Msg("Running all examples")

	succeeded := 0
	for _, example := range examples {
		logger.Info().Str("example", example.name).Msg("Running example")

		if err := example.run(ctx); err != nil {
			logger.Error().Err(err).Str("example", example.name).Msg("Example failed")
			continue
		}
		succeeded++
	}

	logger.Info().
		Int("successful", succeeded).
		Int("total", len(examples)).
		Str("output_dir", flags.outputDir).
		Msg("All examples completed")

	if succeeded == 0 {
		return errors.New("all examples failed")
	}

	return nil
}
