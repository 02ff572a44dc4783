package output

import (
	"bytes"
	"encoding/json"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pagesift/pagesift/document"
	"github.com/pagesift/pagesift/log"
	"github.com/pagesift/pagesift/store"
)

// TIMESTAMP_LAYOUT is the timestamp embedded in every output filename.
const TIMESTAMP_LAYOUT = "20060102_150405"

var hostSanitizer = regexp.MustCompile(`[^\w\-.]`)

// Artifacts holds everything a single scrape produced. The writer renders
// a subset of it per requested format.
type Artifacts struct {
	URL *url.URL
	// Document renders the markdown format (front matter + content).
	Document *document.Document
	// HTML is the raw page markup.
	HTML string
	// Structured renders the json format: either a parsed extraction map or
	// one of the document structures. Nil means there is nothing structured
	// to write and the json format is skipped.
	Structured any
	// Raw is the full result envelope for the raw dump.
	Raw map[string]any
}

// Writer renders scrape artifacts into files under a results directory.
type Writer struct {
	log   zerolog.Logger
	files store.LocalStore
	dir   string
}

// NewWriter creates the results directory and a writer rooted at it.
func NewWriter(dir string) (*Writer, error) {
	files, err := store.NewFileStore(dir)
	if err != nil {
		return nil, err
	}

	return &Writer{
		log:   log.NewLogger("output"),
		files: files,
		dir:   dir,
	}, nil
}

// Dir returns the results directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write renders the requested formats concurrently. Files are named
// <sanitized-host>_<timestamp> with a per-format suffix. A failing format
// is logged and skipped without affecting the others; the returned map
// holds the paths that were written, and the error names any formats
// that were not.
func (w *Writer) Write(artifacts Artifacts, formats []Format) (map[Format]string, error) {
	base := sanitizeHost(artifacts.URL.Host) + "_" + time.Now().Format(TIMESTAMP_LAYOUT)

	var (
		mu     sync.Mutex
		saved  = make(map[Format]string)
		failed []string
	)

	eg := errgroup.Group{}
	eg.SetLimit(4)

	for _, format := range formats {
		eg.Go(func() error {
			name, err := w.render(artifacts, format, base)
			if err != nil {
				w.log.Warn().Err(err).Str("format", string(format)).Msg("Failed to write output format")
				mu.Lock()
				failed = append(failed, string(format))
				mu.Unlock()
				return nil
			}

			if name == "" {
				return nil
			}

			mu.Lock()
			saved[format] = filepath.Join(w.dir, name)
			mu.Unlock()
			return nil
		})
	}

	eg.Wait()

	if len(failed) > 0 {
		return saved, errors.Errorf("failed to write formats: %s", strings.Join(failed, ", "))
	}

	return saved, nil
}

// render writes a single format and returns the filename, or "" when the
// format has nothing to write.
func (w *Writer) render(artifacts Artifacts, format Format, base string) (string, error) {
	name := base + format.Ext()

	switch format {
	case FormatMarkdown:
		md, err := artifacts.Document.ToMarkdown()
		if err != nil {
			return "", errors.Wrap(err, "failed to render document")
		}
		return name, w.files.Store(name, strings.NewReader(md))
	case FormatJSON:
		if artifacts.Structured == nil {
			w.log.Debug().Str("url", artifacts.URL.String()).Msg("No structured content, skipping json output")
			return "", nil
		}
		buf, err := json.MarshalIndent(artifacts.Structured, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal structured content")
		}
		return name, w.files.Store(name, bytes.NewReader(buf))
	case FormatHTML:
		return name, w.files.Store(name, strings.NewReader(artifacts.HTML))
	case FormatRaw:
		buf, err := json.MarshalIndent(artifacts.Raw, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "failed to marshal raw result")
		}
		return name, w.files.Store(name, bytes.NewReader(buf))
	default:
		return "", errors.Errorf("unknown output format: %q", format)
	}
}

// WriteSummary writes the aggregate batch summary as indented JSON and
// returns its path.
func (w *Writer) WriteSummary(summary any) (string, error) {
	buf, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal summary")
	}

	name := "scraping_summary_" + time.Now().Format(TIMESTAMP_LAYOUT) + ".json"
	if err := w.files.Store(name, bytes.NewReader(buf)); err != nil {
		return "", errors.Wrapf(err, "failed to write summary %s", name)
	}

	return filepath.Join(w.dir, name), nil
}

func sanitizeHost(host string) string {
	return hostSanitizer.ReplaceAllString(host, "_")
}
