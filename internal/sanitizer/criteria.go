package sanitizer

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	criteriaTierJSON   = "json"
	criteriaTierQuoted = "quoted_strings"
	criteriaTierLines  = "lines"
)

var (
	quotedPattern = regexp.MustCompile(quoted)
	bulletPattern = regexp.MustCompile(`^(?:[-*•+]|\d+[.)])\s+`)
)

type criteriaTier struct {
	name    string
	recover func(raw string) []string
}

var criteriaTiers = []criteriaTier{
	{name: criteriaTierJSON, recover: criteriaFromJSON},
	{name: criteriaTierQuoted, recover: criteriaFromQuoted},
	{name: criteriaTierLines, recover: criteriaFromLines},
}

// criteriaFromJSON accepts a JSON array of strings or an object with a
// "criteria" array. Non-string elements are ignored.
func criteriaFromJSON(raw string) []string {
	candidates := append(payloadCandidates(raw, '[', ']'), payloadCandidates(raw, '{', '}')...)
	for _, doc := range candidates {
		if !gjson.Valid(doc) {
			continue
		}

		list := gjson.Parse(doc)
		if list.IsObject() {
			list = list.Get("criteria")
		}
		if !list.IsArray() {
			continue
		}

		var out []string
		list.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.String {
				out = append(out, item.Str)
			}
			return true
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// criteriaFromQuoted collects the quoted strings of the first bracketed
// region, which covers arrays cut off before their closing bracket.
func criteriaFromQuoted(raw string) []string {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return nil
	}

	region := raw[start+1:]
	if end := strings.IndexByte(region, ']'); end >= 0 {
		region = region[:end]
	}

	var out []string
	for _, m := range quotedPattern.FindAllStringSubmatch(region, -1) {
		out = append(out, unquote(m[1]))
	}
	return out
}

// criteriaFromLines treats every meaningful line as a criterion, dropping list
// markers, quotes and trailing commas.
func criteriaFromLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(stripCodeFence(raw), "\n") {
		line = strings.TrimSpace(line)
		line = bulletPattern.ReplaceAllString(line, "")
		line = strings.TrimSuffix(line, ",")
		line = strings.Trim(line, `"' `)
		if line == "" || strings.Trim(line, "[]{}`") == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
