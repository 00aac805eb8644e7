// Package report renders ranking results as CSV and JSON.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spigell/resume-ranker/internal/ranking"
)

const (
	ColumnName     = "Candidate Name"
	ColumnTotal    = "Total Score"
	ColumnDuration = "Processing Time (s)"
	ColumnError    = "Error"
)

var criterionPrefixes = []string{"[Required] ", "[Preferred] "}

// ColumnTitle strips the requirement markers from a criterion.
func ColumnTitle(criterion string) string {
	for _, prefix := range criterionPrefixes {
		criterion = strings.TrimPrefix(criterion, prefix)
	}
	return strings.TrimSpace(criterion)
}

// Header returns the CSV header for the given results.
func Header(r *ranking.Results) []string {
	header := make([]string, 0, len(r.Criteria)+4)
	header = append(header, ColumnName)
	for _, criterion := range r.Criteria {
		header = append(header, ColumnTitle(criterion))
	}
	return append(header, ColumnTotal, ColumnDuration, ColumnError)
}

// WriteCSV writes one row per candidate in ranking order. Failed candidates
// have empty score cells and the error message set.
func WriteCSV(w io.Writer, r *ranking.Results) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header(r)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range r.Candidates {
		row := make([]string, 0, len(r.Criteria)+4)
		row = append(row, c.Name)

		for _, criterion := range r.Criteria {
			cell := ""
			if !c.Failed() {
				score, _ := c.Scores.Score(criterion)
				cell = strconv.Itoa(score)
			}
			row = append(row, cell)
		}

		total, errMsg := strconv.Itoa(c.Total), ""
		if c.Failed() {
			total, errMsg = "", c.Err.Error()
		}
		row = append(row, total, strconv.FormatFloat(c.Duration.Seconds(), 'f', 2, 64), errMsg)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", c.Document, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
