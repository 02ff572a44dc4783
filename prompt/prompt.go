package prompt

import (
	"fmt"
	"net/url"
)

const EXTRACTION_PROMPT = `Extract comprehensive information from this webpage and return it as a structured JSON object.

Website: %s
Domain: %s

Please extract the following information and format it as valid JSON:

{
    "metadata": {
        "url": "the original URL",
        "title": "page title",
        "description": "meta description or main page description",
        "language": "detected language",
        "last_updated": "if available",
        "word_count": "approximate word count"
    },
    "content": {
        "main_heading": "main page heading",
        "sub_headings": ["list of sub-headings"],
        "main_content": "main text content (summarized)",
        "key_points": ["list of key points or features"],
        "call_to_actions": ["list of buttons, links, or CTAs"]
    },
    "navigation": {
        "menu_items": ["list of navigation menu items"],
        "breadcrumbs": ["breadcrumb navigation if available"],
        "footer_links": ["list of footer links"]
    },
    "media": {
        "images": ["list of image descriptions or alt texts"],
        "videos": ["list of video titles or descriptions"],
        "documents": ["list of downloadable documents"]
    },
    "business_info": {
        "company_name": "if available",
        "contact_info": {
            "email": "email addresses",
            "phone": "phone numbers",
            "address": "physical addresses"
        },
        "social_media": ["social media links"],
        "pricing": "pricing information if available"
    },
    "technical": {
        "technologies": ["detected technologies or frameworks"],
        "forms": ["list of forms and their purposes"],
        "external_links": ["list of external links"]
    }
}

Important:
- Return ONLY valid JSON, no additional text
- Use null for missing information
- Keep text concise but informative
- Preserve the exact structure above
- If information is not available, use null or empty arrays/objects`

// CreateExtractionPrompt builds the default comprehensive extraction prompt
// for the given page.
func CreateExtractionPrompt(u *url.URL) string {
	return fmt.Sprintf(EXTRACTION_PROMPT, u.String(), u.Host)
}

const CONTENT_TEMPLATE = `%s

---

Webpage content (markdown):

%s`

// AttachContent appends the page markdown to an extraction prompt, forming
// the full completion input.
func AttachContent(prompt, markdown string) string {
	return fmt.Sprintf(CONTENT_TEMPLATE, prompt, markdown)
}
