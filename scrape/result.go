package scrape

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pagesift/pagesift/output"
)

// VERSION identifies the scraper in result metadata.
const VERSION = "pagesift/0.1.0"

// Strategy selects how structured content is produced from a fetched page.
type Strategy string

const (
	// StrategySimple derives structure from the page itself, no model call.
	StrategySimple Strategy = "simple"
	// StrategyLLM runs a single extraction completion against the page.
	StrategyLLM Strategy = "llm"
	// StrategyComprehensive is the llm strategy with the full extraction
	// prompt; kept as a separate name so callers can label runs.
	StrategyComprehensive Strategy = "comprehensive"
)

// ParseStrategy normalizes and validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case StrategySimple, StrategyLLM, StrategyComprehensive:
		return s, nil
	default:
		return "", errors.Errorf("unknown strategy: %q (valid strategies: simple, llm, comprehensive)", name)
	}
}

// UsesModel reports whether the strategy calls the language model.
func (s Strategy) UsesModel() bool {
	return s == StrategyLLM || s == StrategyComprehensive
}

// Options configure a single scrape.
type Options struct {
	Strategy Strategy
	// Formats to write. Empty means every format.
	Formats []output.Format
	// Prompt overrides the default extraction prompt on model strategies.
	Prompt string
}

// Stages a scrape can fail in.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageWrite   = "write"
)

// ErrorRecord describes a failed stage of a scrape.
type ErrorRecord struct {
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	URL       string    `json:"url"`
	Timestamp time.Time `json:"timestamp"`
}

func newErrorRecord(stage, url string, err error) *ErrorRecord {
	return &ErrorRecord{
		Stage:     stage,
		Message:   err.Error(),
		URL:       url,
		Timestamp: time.Now(),
	}
}

// Metadata describes how a result was produced.
type Metadata struct {
	ScrapedAt        time.Time `json:"scraped_at"`
	Scraper          string    `json:"scraper"`
	Fetcher          string    `json:"fetcher,omitempty"`
	ModelUsed        string    `json:"model_used"`
	RawContentLength int       `json:"raw_content_length"`
	LinksFound       int       `json:"links_found"`
}

// Result is the outcome of scraping one URL. Success reflects the fetch:
// extraction and write problems are recorded in Error but leave the formats
// that could be written on disk.
type Result struct {
	Success    bool                     `json:"success"`
	URL        string                   `json:"url"`
	Strategy   Strategy                 `json:"strategy"`
	Formats    []output.Format          `json:"output_formats"`
	Extracted  any                      `json:"extracted,omitempty"`
	SavedFiles map[output.Format]string `json:"saved_files,omitempty"`
	Metadata   Metadata                 `json:"metadata"`
	Error      *ErrorRecord             `json:"error,omitempty"`

	// Duration is tracked for the scrape history, not serialized.
	Duration time.Duration `json:"-"`
}

// Summary aggregates a batch run.
type Summary struct {
	BatchID        string    `json:"batch_id"`
	TotalURLs      int       `json:"total_urls"`
	Successful     int       `json:"successful"`
	Failed         int       `json:"failed"`
	SuccessRate    string    `json:"success_rate"`
	SuccessfulURLs []string  `json:"successful_urls"`
	FailedURLs     []string  `json:"failed_urls"`
	Errors         []string  `json:"errors"`
	GeneratedAt    time.Time `json:"generated_at"`
}

func newSummary(batchID string, results []*Result) *Summary {
	summary := &Summary{
		BatchID:        batchID,
		TotalURLs:      len(results),
		SuccessfulURLs: make([]string, 0, len(results)),
		FailedURLs:     make([]string, 0),
		Errors:         make([]string, 0),
		SuccessRate:    "0%",
		GeneratedAt:    time.Now(),
	}

	for _, result := range results {
		if result.Success {
			summary.Successful++
			summary.SuccessfulURLs = append(summary.SuccessfulURLs, result.URL)
			continue
		}

		summary.Failed++
		summary.FailedURLs = append(summary.FailedURLs, result.URL)
		if result.Error != nil {
			summary.Errors = append(summary.Errors, result.Error.Message)
		} else {
			summary.Errors = append(summary.Errors, "unknown error")
		}
	}

	if summary.TotalURLs > 0 {
		summary.SuccessRate = fmt.Sprintf("%.1f%%", float64(summary.Successful)/float64(summary.TotalURLs)*100)
	}

	return summary
}
