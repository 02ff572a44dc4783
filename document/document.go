package document

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Metadata is rendered as YAML front matter on markdown output.
type Metadata struct {
	Title         string   `yaml:"title"`
	Description   *string  `yaml:"description,omitempty"`
	Source        string   `yaml:"source"`
	Strategy      string   `yaml:"strategy"`
	FetchedTime   string   `yaml:"fetchedTime"`
	ContentLength int      `yaml:"contentLength"`
	Links         []string `yaml:"links,omitempty"`
}

type Document struct {
	// The markdown content of the scraped page.
	Content string
	// Metadata about the document.
	Metadata Metadata
}

func (d *Document) HasTitle() bool {
	return d.Metadata.Title != ""
}

// FindTitle returns the first level-1 heading of the content, or the title
// already present in the metadata.
func (d *Document) FindTitle() string {
	if d.Metadata.Title != "" {
		return d.Metadata.Title
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	content := []byte(d.Content)
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader)

	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if heading, ok := n.(*ast.Heading); ok && entering && heading.Level == 1 {
			var titleBuilder strings.Builder
			for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
				if text, ok := child.(*ast.Text); ok {
					titleBuilder.Write(text.Segment.Value(content))
				}
			}
			title = titleBuilder.String()
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return title
}

// Headings returns the text of all level-2 and level-3 headings in document
// order.
func (d *Document) Headings() []string {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	content := []byte(d.Content)
	reader := text.NewReader(content)
	doc := md.Parser().Parse(reader)

	headings := make([]string, 0)
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if heading, ok := n.(*ast.Heading); ok && entering && heading.Level >= 2 && heading.Level <= 3 {
			var builder strings.Builder
			for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
				if text, ok := child.(*ast.Text); ok {
					builder.Write(text.Segment.Value(content))
				}
			}
			if s := builder.String(); s != "" {
				headings = append(headings, s)
			}
		}
		return ast.WalkContinue, nil
	})

	return headings
}

// ToMarkdown renders the document as markdown with the metadata as YAML
// front matter.
func (d *Document) ToMarkdown() (string, error) {
	if !d.HasTitle() {
		d.Metadata.Title = d.FindTitle()
	}

	var builder strings.Builder
	frontMatter, err := yaml.Marshal(d.Metadata)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal metadata to YAML")
	}

	builder.WriteString("---\n")
	builder.Write(frontMatter)
	builder.WriteString("---\n")
	builder.WriteString(d.Content)

	return builder.String(), nil
}
