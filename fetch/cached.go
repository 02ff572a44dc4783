package fetch

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/pagesift/pagesift/cache"
	"github.com/pagesift/pagesift/log"
)

// CachedFetcher serves repeat fetches of a URL from the page cache instead
// of the network. The cache is owned by the caller.
type CachedFetcher struct {
	log   zerolog.Logger
	inner Fetcher
	pages *cache.PageCache
}

func NewCachedFetcher(inner Fetcher, pages *cache.PageCache) *CachedFetcher {
	return &CachedFetcher{
		log:   log.NewLogger("fetch-cache"),
		inner: inner,
		pages: pages,
	}
}

func (f *CachedFetcher) Fetch(ctx context.Context, u *url.URL) (*Page, error) {
	key := u.String()

	if rawHTML, ok := f.pages.Get(key); ok {
		f.log.Debug().Str("url", key).Msg("Cache hit")
		return NewPage(u, http.StatusOK, rawHTML)
	}

	page, err := f.inner.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := f.pages.Put(key, page.HTML); err != nil {
		f.log.Warn().Err(err).Str("url", key).Msg("Failed to cache page")
	}

	return page, nil
}

func (f *CachedFetcher) Type() string {
	return f.inner.Type()
}

func (f *CachedFetcher) Close() error {
	return f.inner.Close()
}
