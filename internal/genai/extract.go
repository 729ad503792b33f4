package genai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonSpan greedily matches the first { through the last } so JSON wrapped
// in prose (or markdown fences) is still captured whole.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractResult is the explicit outcome of scanning model output for an
// embedded JSON object. Extraction never fails with an error; callers
// branch on the flags.
type ExtractResult struct {
	Found  bool           // a {...} span was present
	Parsed bool           // the span parsed as a JSON object
	Object map[string]any // the parsed object, when Parsed
	Raw    string         // the span text, when Found
}

// ExtractJSON scans free text for the first balanced-looking brace span and
// attempts to parse it.
func ExtractJSON(text string) ExtractResult {
	span := jsonSpan.FindString(text)
	if span == "" {
		return ExtractResult{}
	}

	result := ExtractResult{Found: true, Raw: span}
	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return result
	}
	result.Parsed = true
	result.Object = obj
	return result
}

// Truncate shortens text to at most n runes, appending an ellipsis when
// anything was cut. Used for the degraded summary when parsing fails.
func Truncate(text string, n int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
