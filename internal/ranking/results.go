package ranking

import (
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/spigell/resume-ranker/internal/ai"
)

// Candidate is the ranking outcome for one resume.
type Candidate struct {
	// Document is the resume file name.
	Document string
	// Name is the display name: the extracted name when it was trusted,
	// otherwise one derived from the file name.
	Name     string
	NameInfo ai.NameExtractionResult
	Scores   ai.ScoreSet
	Total    int
	Duration time.Duration
	Err      error
}

// Failed reports whether the candidate could not be scored.
func (c *Candidate) Failed() bool {
	return c.Err != nil
}

// Results holds a ranked batch. Candidates are ordered by total score,
// highest first, with failed candidates last.
type Results struct {
	RunID      string
	Criteria   ai.CriteriaList
	Candidates []*Candidate
}

func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Candidates)
}

// Err aggregates the errors of every failed candidate, nil when all succeeded.
func (r *Results) Err() error {
	if r == nil {
		return nil
	}

	var result *multierror.Error
	for _, c := range r.Candidates {
		if c.Err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", c.Document, c.Err))
		}
	}
	return result.ErrorOrNil()
}

// Failed returns the candidates that could not be scored.
func (r *Results) Failed() []*Candidate {
	var out []*Candidate
	for _, c := range r.Candidates {
		if c.Failed() {
			out = append(out, c)
		}
	}
	return out
}

// Keep returns a copy of r holding only the candidates accepted by keep.
func (r *Results) Keep(keep func(*Candidate) bool) *Results {
	out := &Results{RunID: r.RunID, Criteria: r.Criteria}
	for _, c := range r.Candidates {
		if keep(c) {
			out.Candidates = append(out.Candidates, c)
		}
	}
	return out
}

func sortCandidates(candidates []*Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		return a.Total > b.Total
	})
}
