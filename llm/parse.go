package llm

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/pagesift/pagesift/util"
)

// RAW_MARKDOWN_LIMIT is how much of the page markdown rides along inside a
// parsed extraction, in runes.
const RAW_MARKDOWN_LIMIT = 1000

// StripFences removes a ```json (or bare ```) code fence wrapping s.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	} else {
		return s
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ExtractJSON cuts s down to the first complete JSON object or array it
// contains. Models routinely wrap their JSON in prose; this recovers the
// usable part.
func ExtractJSON(s string) (string, error) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", errors.New("no JSON object or array found in response")
	}

	dec := json.NewDecoder(strings.NewReader(s[start:]))

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", errors.Wrap(err, "failed to decode JSON from response")
	}

	return string(raw), nil
}

// ParseExtraction turns a model reply into the structured extraction map,
// with the page markdown attached (truncated) under raw_markdown. The caller
// decides what to do when the reply is unusable.
func ParseExtraction(reply, markdown string) (map[string]any, error) {
	cleaned := StripFences(reply)

	raw, err := ExtractJSON(cleaned)
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, errors.Wrap(err, "extracted content is not a JSON object")
	}

	parsed["raw_markdown"] = util.Truncate(markdown, RAW_MARKDOWN_LIMIT)

	return parsed, nil
}
