package document

import (
	"net/url"

	"github.com/pagesift/pagesift/util"
)

const (
	simpleContentLimit   = 1000
	fallbackContentLimit = 500
	simpleLinkLimit      = 20
	fallbackLinkLimit    = 10
)

// SimpleStructure is the structured output of the simple strategy: the page
// content and its links, no LLM pass.
type SimpleStructure struct {
	Metadata       SimpleMetadata `json:"metadata"`
	Content        SimpleContent  `json:"content"`
	Links          []string       `json:"links"`
	ScrapingMethod string         `json:"scraping_method"`
}

type SimpleMetadata struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	WordCount   int    `json:"word_count"`
}

type SimpleContent struct {
	MainContent string `json:"main_content"`
	FullContent string `json:"full_content"`
}

func NewSimpleStructure(u *url.URL, markdown string, links []string) *SimpleStructure {
	return &SimpleStructure{
		Metadata: SimpleMetadata{
			URL:         u.String(),
			Title:       "Content from " + u.Host,
			Description: "Basic scraping result",
			Language:    "unknown",
			WordCount:   util.WordCount(markdown),
		},
		Content: SimpleContent{
			MainContent: util.Truncate(markdown, simpleContentLimit),
			FullContent: markdown,
		},
		Links:          capLinks(links, simpleLinkLimit),
		ScrapingMethod: "simple",
	}
}

// FallbackStructure mirrors the shape the extraction prompt asks for. It is
// used when the model reply cannot be parsed as JSON, so downstream
// consumers always see the same top-level keys.
type FallbackStructure struct {
	Metadata         FallbackMetadata `json:"metadata"`
	Content          FallbackContent  `json:"content"`
	Navigation       Navigation       `json:"navigation"`
	Media            Media            `json:"media"`
	BusinessInfo     BusinessInfo     `json:"business_info"`
	Technical        Technical        `json:"technical"`
	RawMarkdown      string           `json:"raw_markdown"`
	ExtractionMethod string           `json:"extraction_method"`
}

type FallbackMetadata struct {
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Language    string  `json:"language"`
	LastUpdated *string `json:"last_updated"`
	WordCount   int     `json:"word_count"`
}

type FallbackContent struct {
	MainHeading   string   `json:"main_heading"`
	SubHeadings   []string `json:"sub_headings"`
	MainContent   string   `json:"main_content"`
	KeyPoints     []string `json:"key_points"`
	CallToActions []string `json:"call_to_actions"`
}

type Navigation struct {
	MenuItems   []string `json:"menu_items"`
	Breadcrumbs []string `json:"breadcrumbs"`
	FooterLinks []string `json:"footer_links"`
}

type Media struct {
	Images    []string `json:"images"`
	Videos    []string `json:"videos"`
	Documents []string `json:"documents"`
}

type BusinessInfo struct {
	CompanyName string      `json:"company_name"`
	ContactInfo ContactInfo `json:"contact_info"`
	SocialMedia []string    `json:"social_media"`
	Pricing     *string     `json:"pricing"`
}

type ContactInfo struct {
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type Technical struct {
	Technologies  []string `json:"technologies"`
	Forms         []string `json:"forms"`
	ExternalLinks []string `json:"external_links"`
}

func NewFallbackStructure(u *url.URL, markdown string, links, headings []string) *FallbackStructure {
	if headings == nil {
		headings = []string{}
	}

	return &FallbackStructure{
		Metadata: FallbackMetadata{
			URL:         u.String(),
			Title:       "Extracted from markdown",
			Description: "Content extracted using fallback method",
			Language:    "unknown",
			WordCount:   util.WordCount(markdown),
		},
		Content: FallbackContent{
			MainHeading:   "Content from " + u.Host,
			SubHeadings:   headings,
			MainContent:   util.Truncate(markdown, fallbackContentLimit),
			KeyPoints:     []string{},
			CallToActions: []string{},
		},
		Navigation: Navigation{
			MenuItems:   []string{},
			Breadcrumbs: []string{},
			FooterLinks: capLinks(links, fallbackLinkLimit),
		},
		Media: Media{
			Images:    []string{},
			Videos:    []string{},
			Documents: []string{},
		},
		BusinessInfo: BusinessInfo{
			CompanyName: u.Host,
			ContactInfo: ContactInfo{},
			SocialMedia: []string{},
		},
		Technical: Technical{
			Technologies:  []string{},
			Forms:         []string{},
			ExternalLinks: capLinks(links, fallbackLinkLimit),
		},
		RawMarkdown:      markdown,
		ExtractionMethod: "fallback",
	}
}

func capLinks(links []string, n int) []string {
	if links == nil {
		return []string{}
	}
	if len(links) > n {
		return links[:n]
	}
	return links
}
