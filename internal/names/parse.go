package names

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotJSON is returned when a name response is not a JSON object.
var ErrNotJSON = errors.New("name response is not a JSON object")

// ParseProposal reads a {"name", "confidence", "source"} object from a model
// response. Code fences and surrounding prose are tolerated; confidence may be
// a number or a numeric string and is clamped to 0..100.
func ParseProposal(raw string) (Proposal, error) {
	doc := objectSpan(raw)
	if doc == "" || !gjson.Valid(doc) {
		return Proposal{}, fmt.Errorf("parse name proposal: %w", ErrNotJSON)
	}

	result := gjson.Parse(doc)
	if !result.IsObject() {
		return Proposal{}, fmt.Errorf("parse name proposal: %w", ErrNotJSON)
	}

	return Proposal{
		Name:       result.Get("name").String(),
		Confidence: confidence(result.Get("confidence")),
		Source:     result.Get("source").String(),
	}, nil
}

func objectSpan(raw string) string {
	raw = strings.TrimSpace(raw)
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return ""
	}
	return raw[start : end+1]
}

func confidence(v gjson.Result) int {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Float()
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v.Str), "%"), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) {
		return 0
	}
	return int(math.Max(0, math.Min(100, f)))
}
