package scrape

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pagesift/pagesift/document"
	"github.com/pagesift/pagesift/fetch"
	"github.com/pagesift/pagesift/history"
	"github.com/pagesift/pagesift/llm"
	"github.com/pagesift/pagesift/log"
	"github.com/pagesift/pagesift/output"
	"github.com/pagesift/pagesift/prompt"
	"github.com/pagesift/pagesift/util"
)

// Scraper fetches pages, derives or extracts structured content and writes
// the requested output formats.
type Scraper struct {
	log       zerolog.Logger
	fetcher   fetch.Fetcher
	completer llm.Completer
	writer    *output.Writer
	history   *history.Store
}

// New creates a scraper. The completer may be nil when only the simple
// strategy will run; the history store may be nil to disable history.
func New(fetcher fetch.Fetcher, completer llm.Completer, writer *output.Writer, hist *history.Store) *Scraper {
	return &Scraper{
		log:       log.NewLogger("scrape"),
		fetcher:   fetcher,
		completer: completer,
		writer:    writer,
		history:   hist,
	}
}

// OutputDir returns the directory scrape outputs are written to.
func (s *Scraper) OutputDir() string {
	return s.writer.Dir()
}

// Scrape runs one URL through fetch, strategy dispatch and the output
// writer. It always returns a result; Success is false only when nothing
// was fetched (unknown strategy, bad URL, transport failure).
func (s *Scraper) Scrape(ctx context.Context, rawURL string, opts Options) *Result {
	start := time.Now()

	result := &Result{
		URL:      rawURL,
		Strategy: opts.Strategy,
		Metadata: Metadata{
			ScrapedAt: start,
			Scraper:   VERSION,
			ModelUsed: "none",
		},
	}

	formats := opts.Formats
	if len(formats) == 0 {
		formats = output.All()
	}
	result.Formats = formats

	defer func() {
		result.Duration = time.Since(start)
		s.record(result)
	}()

	strategy, err := ParseStrategy(string(opts.Strategy))
	if err != nil {
		s.fail(result, StageFetch, err)
		return result
	}
	opts.Strategy = strategy
	result.Strategy = strategy

	s.log.Info().Str("url", rawURL).Str("strategy", string(strategy)).Msg("Scraping web page")

	u, err := url.Parse(rawURL)
	if err != nil {
		s.fail(result, StageFetch, errors.Wrapf(err, "invalid URL %q", rawURL))
		return result
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		s.fail(result, StageFetch, errors.Errorf("invalid URL %q: expected an absolute http(s) URL", rawURL))
		return result
	}

	page, err := s.fetcher.Fetch(ctx, u)
	if err != nil {
		s.fail(result, StageFetch, err)
		return result
	}

	result.Success = true
	result.Metadata.Fetcher = s.fetcher.Type()
	result.Metadata.RawContentLength = len(page.Markdown)
	result.Metadata.LinksFound = len(page.Links)

	s.log.Info().
		Int("content_length", len(page.Markdown)).
		Int("links", len(page.Links)).
		Msg("Crawl complete")

	var structured any
	if opts.Strategy.UsesModel() {
		result.Metadata.ModelUsed = s.completer.Model()
		structured = s.extract(ctx, u, page, opts.Prompt, result)
	} else {
		structured = document.NewSimpleStructure(u, page.Markdown, page.Links)
	}
	result.Extracted = structured

	doc := &document.Document{
		Content: page.Markdown,
		Metadata: document.Metadata{
			Title:         page.Title,
			Source:        u.String(),
			Strategy:      string(opts.Strategy),
			FetchedTime:   page.FetchedAt.Format(time.RFC3339),
			ContentLength: len(page.Markdown),
			Links:         page.Links,
		},
	}

	artifacts := output.Artifacts{
		URL:        u,
		Document:   doc,
		HTML:       page.HTML,
		Structured: structured,
		Raw: map[string]any{
			"markdown": page.Markdown,
			"links":    page.Links,
			"metadata": map[string]any{
				"url":         u.String(),
				"title":       page.Title,
				"status_code": page.StatusCode,
				"fetched_at":  page.FetchedAt.Format(time.RFC3339),
				"fetcher":     s.fetcher.Type(),
			},
		},
	}

	saved, err := s.writer.Write(artifacts, formats)
	if err != nil {
		s.log.Warn().Err(err).Msg("Not all output formats were written")
		if result.Error == nil {
			result.Error = newErrorRecord(StageWrite, u.String(), err)
		}
	}
	result.SavedFiles = saved

	for format, path := range saved {
		s.log.Info().Str("format", string(format)).Str("file", path).Msg("Output saved")
	}

	return result
}

// extract runs the extraction prompt against the page and parses the reply.
// A failed request returns nil (nothing structured to write); an unparseable
// reply falls back to a structure derived from the page itself.
func (s *Scraper) extract(ctx context.Context, u *url.URL, page *fetch.Page, customPrompt string, result *Result) any {
	p := customPrompt
	if p == "" {
		p = prompt.CreateExtractionPrompt(u)
	}
	p = prompt.AttachContent(p, util.Truncate(page.Markdown, llm.MAX_CONTENT_RUNES))

	reply, err := s.completer.Complete(ctx, p)
	if err != nil {
		s.log.Warn().Err(err).Msg("Extraction request failed, skipping structured output")
		result.Error = newErrorRecord(StageExtract, u.String(), err)
		return nil
	}

	parsed, err := llm.ParseExtraction(reply, page.Markdown)
	if err != nil {
		s.log.Warn().Err(err).Msg("Could not parse extracted content as JSON, using fallback structure")
		doc := &document.Document{Content: page.Markdown}
		return document.NewFallbackStructure(u, page.Markdown, page.Links, doc.Headings())
	}

	return parsed
}

func (s *Scraper) fail(result *Result, stage string, err error) {
	s.log.Error().Err(err).Str("url", result.URL).Msg("Scrape failed")
	result.Success = false
	result.Error = newErrorRecord(stage, result.URL, err)
}

// record appends the result to the scrape history, if one is configured.
func (s *Scraper) record(result *Result) {
	if s.history == nil {
		return
	}

	rec := history.Record{
		URL:       result.URL,
		Strategy:  string(result.Strategy),
		Success:   result.Success,
		ScrapedAt: result.Metadata.ScrapedAt,
		Duration:  result.Duration,
	}
	if result.Error != nil {
		rec.Error = result.Error.Message
	}

	for _, path := range result.SavedFiles {
		rec.Files = append(rec.Files, path)
	}
	sort.Strings(rec.Files)

	s.history.Add(rec)
}
