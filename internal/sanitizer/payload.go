package sanitizer

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// stripCodeFence removes a surrounding markdown code block, with or without a
// language tag, and stray backticks.
func stripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.Index(raw, "\n"); idx >= 0 {
			tag := strings.TrimSpace(raw[:idx])
			if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
				raw = raw[idx+1:]
			}
		}
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// payloadCandidates returns the texts worth a strict parse: the fenced-stripped
// response and, when prose surrounds it, the span between the outermost open
// and close delimiters.
func payloadCandidates(raw string, open, close byte) []string {
	cleaned := stripCodeFence(raw)
	candidates := []string{cleaned}

	start := strings.IndexByte(cleaned, open)
	end := strings.LastIndexByte(cleaned, close)
	if start >= 0 && end > start {
		if span := cleaned[start : end+1]; span != cleaned {
			candidates = append(candidates, span)
		}
	}

	return candidates
}

// unquote decodes JSON escapes captured by the recovery patterns, falling back
// to the raw capture when it does not decode.
func unquote(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	decoded, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return s
	}
	return decoded
}

// parseScore converts an integer literal to a score. Literals too large to
// represent saturate; clamping into the score range happens in normalize.
func parseScore(literal string) (int, bool) {
	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	switch {
	case v > math.MaxInt32:
		v = math.MaxInt32
	case v < math.MinInt32:
		v = math.MinInt32
	}
	return int(v), true
}
