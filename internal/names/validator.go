// Package names decides whether a model-proposed candidate name can be trusted.
package names

import (
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-ranker/internal/ai"
)

const (
	// MinConfidence is the lowest confidence accepted before falling back to
	// the filename.
	MinConfidence = 70
	maxNameLength = 50

	forbiddenExampleName = "emily chen"
)

// placeholders are names models copy from prompt examples or templates.
var placeholders = map[string]struct{}{
	"emily chen":              {},
	"john smith":              {},
	"john doe":                {},
	"jane doe":                {},
	"emily j. miller":         {},
	"james wilson":            {},
	"sarah johnson":           {},
	"[actual extracted name]": {},
	"your name":               {},
	"candidate name":          {},
	"resume":                  {},
}

// Proposal is a name suggested by the model.
type Proposal struct {
	Name       string
	Confidence int
	Source     string
}

// Validate runs the proposal through an ordered chain of rules, the first
// matching rule decides. Rejections replace the name with filename and zero
// the confidence.
func Validate(p Proposal, filename string) ai.NameExtractionResult {
	name := strings.TrimSpace(p.Name)
	lower := strings.ToLower(name)

	reject := func(source ai.NameSource) ai.NameExtractionResult {
		return ai.NameExtractionResult{Name: filename, Confidence: 0, Source: source}
	}

	switch {
	case lower == forbiddenExampleName:
		return reject(ai.SourceForbiddenExampleName)
	case name == "":
		return reject(ai.SourceEmptyResult)
	case isPlaceholder(lower):
		return reject(ai.SourceExampleNameRejected)
	case strings.ContainsAny(name, "[]{}<>") || strings.Contains(lower, "example"):
		return reject(ai.SourcePlaceholderRejected)
	case len(strings.Fields(name)) < 2:
		return reject(ai.SourceInvalidStructure)
	case utf8.RuneCountInString(name) > maxNameLength:
		return reject(ai.SourceNameTooLong)
	case p.Confidence < MinConfidence && filename != "":
		return ai.NameExtractionResult{Name: filename, Confidence: 100, Source: ai.SourceFilenameFallback}
	}

	source := ai.NameSource(strings.TrimSpace(p.Source))
	if source == "" {
		source = ai.SourceContentExtraction
	}

	return ai.NameExtractionResult{Name: name, Confidence: p.Confidence, Source: source}
}

func isPlaceholder(lower string) bool {
	_, ok := placeholders[lower]
	return ok
}
