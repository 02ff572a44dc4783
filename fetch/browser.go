package fetch

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pagesift/pagesift/log"
)

// BrowserFetcher renders pages in a headless browser before reading them.
// The browser starts on the first fetch and is shared by the rest; a failed
// launch surfaces as each fetch's error, not at construction. Close shuts
// the browser down.
type BrowserFetcher struct {
	log zerolog.Logger

	launchOnce sync.Once
	launchErr  error
	launcher   *launcher.Launcher
	browser    *rod.Browser

	timeout time.Duration
}

func NewBrowserFetcher(timeout time.Duration) *BrowserFetcher {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &BrowserFetcher{
		log:     log.NewLogger("browser"),
		timeout: timeout,
	}
}

// launch starts the shared browser once. The error is sticky: after a
// failed launch every fetch reports the same error.
func (f *BrowserFetcher) launch() error {
	f.launchOnce.Do(func() {
		l := launcher.New().Headless(true)
		controlURL, err := l.Launch()
		if err != nil {
			f.launchErr = errors.Wrap(err, "failed to launch browser")
			return
		}

		browser := rod.New().ControlURL(controlURL)
		if err := browser.Connect(); err != nil {
			l.Cleanup()
			f.launchErr = errors.Wrap(err, "failed to connect to browser")
			return
		}

		f.log.Info().Msg("Headless browser running")

		f.launcher = l
		f.browser = browser
	})

	return f.launchErr
}

func (f *BrowserFetcher) Fetch(ctx context.Context, u *url.URL) (*Page, error) {
	if err := f.launch(); err != nil {
		return nil, err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open page")
	}

	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	if err := page.Navigate(u.String()); err != nil {
		return nil, errors.Wrapf(err, "failed to navigate to %s", u.String())
	}

	if err := page.WaitStable(time.Second); err != nil {
		f.log.Debug().Err(err).Str("url", u.String()).Msg("Page never settled, reading it anyway")
	}

	rawHTML, err := page.HTML()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read page HTML")
	}

	// Response codes are only visible through request hijacking; a page
	// that navigated and rendered counts as OK here.
	result, err := NewPage(u, http.StatusOK, rawHTML)
	if err != nil {
		return nil, err
	}

	if info, err := page.Info(); err == nil && info.Title != "" {
		result.Title = info.Title
	}

	return result, nil
}

func (f *BrowserFetcher) Type() string {
	return "browser"
}

func (f *BrowserFetcher) Close() error {
	if f.browser == nil {
		return nil
	}

	err := f.browser.Close()
	f.launcher.Cleanup()
	return err
}
