package fetch

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/pagesift/pagesift/document"
)

// NewPage derives the markdown, title and link set from raw page HTML.
func NewPage(u *url.URL, statusCode int, rawHTML string) (*Page, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse HTML")
	}

	mdBody, err := md.ConvertReader(bytes.NewReader([]byte(rawHTML)), converter.WithDomain(u.Host))
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert HTML to Markdown")
	}

	page := &Page{
		URL:        u,
		StatusCode: statusCode,
		HTML:       rawHTML,
		Markdown:   string(mdBody),
		Links:      extractLinks(root, u),
		FetchedAt:  time.Now(),
	}

	title, _ := extractTitle(root)
	if title == "" {
		doc := document.Document{Content: page.Markdown}
		title = doc.FindTitle()
	}
	page.Title = title

	return page, nil
}

func isTitleElement(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "title"
}

func extractTitle(n *html.Node) (string, bool) {
	if isTitleElement(n) {
		if n.FirstChild == nil {
			return "", true
		}
		return strings.TrimSpace(n.FirstChild.Data), true
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		result, ok := extractTitle(c)
		if ok {
			return result, ok
		}
	}

	return "", false
}

func extractLinks(root *html.Node, base *url.URL) []string {
	seen := make(map[string]struct{})
	links := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				if link, ok := resolveLink(base, attr.Val); ok {
					if _, dup := seen[link]; !dup {
						seen[link] = struct{}{}
						links = append(links, link)
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return links
}

// resolveLink turns an href into an absolute http(s) URL. Fragments are
// dropped; javascript:, mailto: and friends are skipped.
func resolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}

	abs.Fragment = ""
	return abs.String(), true
}
