package sanitizer

import (
	"math"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/spigell/resume-ranker/internal/ai"
)

const (
	tierDirect   = "direct_parse"
	tierObjects  = "complete_objects"
	tierFields   = "separate_fields"
	tierNumerics = "numeric_scavenging"

	partialJustification = "Recovered from partial response"
	numericJustification = "Extracted from numeric values in response"
)

// quoted matches the body of a JSON string, escaped quotes included.
const quoted = `"((?:[^"\\]|\\.)*)"`

var (
	scoreObjectPattern = regexp.MustCompile(
		`\{\s*"criterion"\s*:\s*` + quoted +
			`\s*,\s*"score"\s*:\s*(-?\d+)` +
			`\s*,\s*"justification"\s*:\s*` + quoted + `\s*\}`)
	criterionFieldPattern = regexp.MustCompile(`"criterion"\s*:\s*` + quoted)
	scoreFieldPattern     = regexp.MustCompile(`"score"\s*:\s*(-?\d+)`)
	integerPattern        = regexp.MustCompile(`\d+`)
)

type scoreTier struct {
	name    string
	recover func(raw string, canonical ai.CriteriaList) []ai.CriterionScore
}

// scoreTiers is evaluated in order until a tier returns a non-empty result.
var scoreTiers = []scoreTier{
	{name: tierDirect, recover: recoverDirect},
	{name: tierObjects, recover: recoverObjects},
	{name: tierFields, recover: recoverFields},
	{name: tierNumerics, recover: recoverNumerics},
}

// recoverDirect parses the response as a {"scores": [...]} document.
func recoverDirect(raw string, _ ai.CriteriaList) []ai.CriterionScore {
	for _, doc := range payloadCandidates(raw, '{', '}') {
		if !gjson.Valid(doc) || !validEnvelope(doc) {
			continue
		}

		if entries := scoreObjects(gjson.Get(doc, "scores")); len(entries) > 0 {
			return entries
		}
	}
	return nil
}

// scoreObjects keeps the well-formed elements of a scores array: objects with
// a non-empty string criterion and a numeric score.
func scoreObjects(scores gjson.Result) []ai.CriterionScore {
	var out []ai.CriterionScore
	scores.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}

		criterion := item.Get("criterion")
		score := item.Get("score")
		if criterion.Type != gjson.String || strings.TrimSpace(criterion.Str) == "" || score.Type != gjson.Number {
			return true
		}

		out = append(out, ai.CriterionScore{
			Criterion:     criterion.Str,
			Score:         truncateScore(score.Float()),
			Justification: item.Get("justification").String(),
		})
		return true
	})
	return out
}

// recoverObjects scans for complete criterion/score/justification objects,
// surviving truncation and broken surrounding structure.
func recoverObjects(raw string, _ ai.CriteriaList) []ai.CriterionScore {
	var out []ai.CriterionScore
	for _, m := range scoreObjectPattern.FindAllStringSubmatch(raw, -1) {
		criterion := unquote(m[1])
		score, ok := parseScore(m[2])
		if !ok || strings.TrimSpace(criterion) == "" {
			continue
		}
		out = append(out, ai.CriterionScore{
			Criterion:     criterion,
			Score:         score,
			Justification: unquote(m[3]),
		})
	}
	return out
}

// recoverFields pairs loose "criterion" and "score" fields by position.
func recoverFields(raw string, _ ai.CriteriaList) []ai.CriterionScore {
	criteria := criterionFieldPattern.FindAllStringSubmatch(raw, -1)
	scores := scoreFieldPattern.FindAllStringSubmatch(raw, -1)

	n := min(len(criteria), len(scores))
	out := make([]ai.CriterionScore, 0, n)
	for i := 0; i < n; i++ {
		criterion := unquote(criteria[i][1])
		score, ok := parseScore(scores[i][1])
		if !ok || strings.TrimSpace(criterion) == "" {
			continue
		}
		out = append(out, ai.CriterionScore{
			Criterion:     criterion,
			Score:         score,
			Justification: partialJustification,
		})
	}
	return out
}

// recoverNumerics assigns bare integers in the response to the canonical
// criteria by position. Without canonical criteria there is nothing to pair.
func recoverNumerics(raw string, canonical ai.CriteriaList) []ai.CriterionScore {
	if len(canonical) == 0 {
		return nil
	}

	numbers := integerPattern.FindAllString(raw, -1)
	n := min(len(numbers), len(canonical))
	out := make([]ai.CriterionScore, 0, n)
	for i := 0; i < n; i++ {
		score, ok := parseScore(numbers[i])
		if !ok {
			continue
		}
		out = append(out, ai.CriterionScore{
			Criterion:     canonical[i],
			Score:         clamp(score),
			Justification: numericJustification,
		})
	}
	return out
}

func truncateScore(f float64) int {
	switch {
	case math.IsNaN(f):
		return ai.MinScore
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	default:
		return int(f)
	}
}
