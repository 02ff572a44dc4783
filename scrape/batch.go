package scrape

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScrapeBatch runs the URLs strictly in order with a fixed delay between
// requests (none after the last). One failing URL never stops the batch;
// cancelling the context stops it between requests. The aggregate summary
// is written next to the per-URL outputs.
func (s *Scraper) ScrapeBatch(ctx context.Context, urls []string, opts Options, delay time.Duration) (*Summary, []*Result) {
	batchID := uuid.NewString()

	s.log.Info().
		Str("batch_id", batchID).
		Int("urls", len(urls)).
		Str("strategy", string(opts.Strategy)).
		Msg("Starting batch scrape")

	results := make([]*Result, 0, len(urls))

loop:
	for i, rawURL := range urls {
		s.log.Info().
			Int("current", i+1).
			Int("total", len(urls)).
			Str("url", rawURL).
			Msg("Batch progress")

		results = append(results, s.Scrape(ctx, rawURL, opts))

		if i == len(urls)-1 || delay <= 0 {
			continue
		}

		s.log.Debug().Dur("delay", delay).Msg("Waiting before next request")
		select {
		case <-ctx.Done():
			s.log.Warn().Err(ctx.Err()).Msg("Batch interrupted")
			break loop
		case <-time.After(delay):
		}
	}

	summary := newSummary(batchID, results)

	s.log.Info().
		Str("batch_id", batchID).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Str("success_rate", summary.SuccessRate).
		Msg("Batch scrape complete")

	if path, err := s.writer.WriteSummary(summary); err != nil {
		s.log.Warn().Err(err).Msg("Failed to write batch summary")
	} else {
		s.log.Info().Str("file", path).Msg("Batch summary saved")
	}

	return summary, results
}
