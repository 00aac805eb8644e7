package ai

// Score bounds for a single criterion.
const (
	MinScore = 0
	MaxScore = 5
)

// CriterionScore is a single judged criterion.
type CriterionScore struct {
	Criterion     string `json:"criterion"`
	Score         int    `json:"score"`
	Justification string `json:"justification,omitempty"`
}

// CriteriaList is an ordered list of ranking criteria. Order drives report
// column order and positional recovery.
type CriteriaList []string

// Contains reports whether criterion is in the list.
func (c CriteriaList) Contains(criterion string) bool {
	for _, item := range c {
		if item == criterion {
			return true
		}
	}
	return false
}

// ScoreSet is an ordered criterion -> score mapping.
type ScoreSet struct {
	Entries []CriterionScore `json:"scores"`
}

// Len returns the number of scored criteria.
func (s ScoreSet) Len() int { return len(s.Entries) }

// Score returns the score for criterion and whether it is present.
func (s ScoreSet) Score(criterion string) (int, bool) {
	for _, entry := range s.Entries {
		if entry.Criterion == criterion {
			return entry.Score, true
		}
	}
	return 0, false
}

// Entry returns the full entry for criterion.
func (s ScoreSet) Entry(criterion string) (CriterionScore, bool) {
	for _, entry := range s.Entries {
		if entry.Criterion == criterion {
			return entry, true
		}
	}
	return CriterionScore{}, false
}

// Criteria returns the criteria in set order.
func (s ScoreSet) Criteria() CriteriaList {
	out := make(CriteriaList, 0, len(s.Entries))
	for _, entry := range s.Entries {
		out = append(out, entry.Criterion)
	}
	return out
}

// Map returns the scores keyed by criterion.
func (s ScoreSet) Map() map[string]int {
	out := make(map[string]int, len(s.Entries))
	for _, entry := range s.Entries {
		out[entry.Criterion] = entry.Score
	}
	return out
}

// Total sums all scores in the set.
func (s ScoreSet) Total() int {
	total := 0
	for _, entry := range s.Entries {
		total += entry.Score
	}
	return total
}

// TotalOf sums the scores of the given criteria only. Criteria absent from
// the set count as 0.
func (s ScoreSet) TotalOf(criteria CriteriaList) int {
	total := 0
	for _, criterion := range criteria {
		score, _ := s.Score(criterion)
		total += score
	}
	return total
}

// NameSource tells where a candidate name came from, or why the proposed one
// was rejected.
type NameSource string

const (
	SourceContentExtraction    NameSource = "content_extraction"
	SourceFilenameFallback     NameSource = "filename_fallback"
	SourceEmptyResult          NameSource = "empty_result"
	SourceExampleNameRejected  NameSource = "example_name_rejected"
	SourcePlaceholderRejected  NameSource = "placeholder_rejected"
	SourceInvalidStructure     NameSource = "invalid_structure"
	SourceNameTooLong          NameSource = "name_too_long"
	SourceForbiddenExampleName NameSource = "forbidden_example_name"
	SourceParseError           NameSource = "parse_error"
	SourceError                NameSource = "error"
)

// Extracted reports whether the name was taken from the resume content rather
// than substituted by a fallback.
func (s NameSource) Extracted() bool {
	switch s {
	case SourceFilenameFallback, SourceEmptyResult, SourceExampleNameRejected,
		SourcePlaceholderRejected, SourceInvalidStructure, SourceNameTooLong,
		SourceForbiddenExampleName, SourceParseError, SourceError:
		return false
	default:
		return true
	}
}

// NameExtractionResult is the validated outcome of candidate name extraction.
type NameExtractionResult struct {
	Name       string     `json:"name"`
	Confidence int        `json:"confidence"`
	Source     NameSource `json:"source"`
}
