package fetch

import (
	"context"
	"net/url"
	"time"
)

// USER_AGENT is sent on static fetches; some sites reject obvious bots.
const USER_AGENT = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

const DEFAULT_TIMEOUT = 30 * time.Second

// Page is the result of fetching a single URL: the raw HTML plus everything
// derived from it.
type Page struct {
	URL        *url.URL
	StatusCode int
	HTML       string
	Markdown   string
	Title      string
	Links      []string
	FetchedAt  time.Time
}

// Fetcher retrieves pages over some transport.
type Fetcher interface {
	Fetch(ctx context.Context, u *url.URL) (*Page, error)
	// Type names the transport (static, browser) for result metadata.
	Type() string
	Close() error
}
