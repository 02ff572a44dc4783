package fetch

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pagesift/pagesift/log"
	"github.com/pagesift/pagesift/util"
)

// StaticFetcher retrieves pages with a plain HTTP GET. It is the default
// transport; pages that assemble their content with JavaScript need the
// browser fetcher instead.
type StaticFetcher struct {
	log    zerolog.Logger
	client *http.Client
}

func NewStaticFetcher(timeout time.Duration) *StaticFetcher {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &StaticFetcher{
		log:    log.NewLogger("fetch"),
		client: &http.Client{Timeout: timeout},
	}
}

func (f *StaticFetcher) Fetch(ctx context.Context, u *url.URL) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", u.String())
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("unexpected status %s fetching %s", resp.Status, u.String())
	}

	ct, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse content type")
	}

	if ct != "text/html" {
		return nil, errors.Errorf("unsupported content type: %s", ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	f.log.Debug().Str("url", u.String()).Str("size", util.FormatBytes(int64(len(body)))).Msg("Page downloaded")

	return NewPage(u, resp.StatusCode, string(body))
}

func (f *StaticFetcher) Type() string {
	return "static"
}

func (f *StaticFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
