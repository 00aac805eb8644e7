package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/ranking"
)

// Report is the JSON form of a ranking run.
type Report struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Criteria    ai.CriteriaList `json:"criteria"`
	Candidates  []Candidate     `json:"candidates"`
}

// Candidate is the JSON form of a ranked candidate.
type Candidate struct {
	Document          string              `json:"document"`
	Name              string              `json:"name"`
	NameSource        ai.NameSource       `json:"name_source"`
	NameConfidence    int                 `json:"name_confidence"`
	TotalScore        int                 `json:"total_score"`
	ProcessingSeconds float64             `json:"processing_time_seconds"`
	Scores            []ai.CriterionScore `json:"scores"`
	Error             string              `json:"error,omitempty"`
}

// New converts ranking results into a report.
func New(r *ranking.Results) *Report {
	report := &Report{
		RunID:       r.RunID,
		GeneratedAt: time.Now().UTC(),
		Criteria:    r.Criteria,
		Candidates:  make([]Candidate, 0, r.Len()),
	}
	if report.Criteria == nil {
		report.Criteria = ai.CriteriaList{}
	}

	for _, c := range r.Candidates {
		candidate := Candidate{
			Document:          c.Document,
			Name:              c.Name,
			NameSource:        c.NameInfo.Source,
			NameConfidence:    c.NameInfo.Confidence,
			TotalScore:        c.Total,
			ProcessingSeconds: math.Round(c.Duration.Seconds()*100) / 100,
			Scores:            c.Scores.Entries,
		}
		if candidate.Scores == nil {
			candidate.Scores = []ai.CriterionScore{}
		}
		if c.Err != nil {
			candidate.Error = c.Err.Error()
		}
		report.Candidates = append(report.Candidates, candidate)
	}

	return report
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r *ranking.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(New(r)); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

// WriteFile writes the results to path using write.
func WriteFile(path string, r *ranking.Results, write func(io.Writer, *ranking.Results) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	return write(file, r)
}

// DumpToTmpFile writes the JSON report to a new temporary file and returns its name.
func DumpToTmpFile(r *ranking.Results) (string, error) {
	file, err := os.CreateTemp("", "ranking_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteJSON(file, r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
