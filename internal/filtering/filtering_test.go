package filtering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/ranking"
)

func candidate(doc string, scores map[string]int, criteria ai.CriteriaList) *ranking.Candidate {
	set := ai.ScoreSet{}
	for _, criterion := range criteria {
		set.Entries = append(set.Entries, ai.CriterionScore{Criterion: criterion, Score: scores[criterion]})
	}
	return &ranking.Candidate{Document: doc, Name: doc, Scores: set, Total: set.Total()}
}

func sampleResults() *ranking.Results {
	criteria := ai.CriteriaList{"[Required] Go", "[Preferred] AWS"}
	return &ranking.Results{
		RunID:    "run",
		Criteria: criteria,
		Candidates: []*ranking.Candidate{
			candidate("strong.txt", map[string]int{"[Required] Go": 5, "[Preferred] AWS": 4}, criteria),
			candidate("no-go.txt", map[string]int{"[Required] Go": 0, "[Preferred] AWS": 5}, criteria),
			candidate("weak.txt", map[string]int{"[Required] Go": 1, "[Preferred] AWS": 0}, criteria),
			{Document: "failed.txt", Err: errors.New("agent down")},
		},
	}
}

func documents(r *ranking.Results) []string {
	var out []string
	for _, c := range r.Candidates {
		out = append(out, c.Document)
	}
	return out
}

func TestRunWithoutConfigKeepsEverything(t *testing.T) {
	steps := Defaults()

	got, err := Run(context.Background(), &Config{}, Deps{}, steps, sampleResults())

	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())
	for _, status := range Describe(steps) {
		assert.False(t, status.Enabled, status.Name)
		assert.Equal(t, notConfiguredReason, status.Reason)
	}
}

func TestMinimumTotalScore(t *testing.T) {
	got, err := Run(context.Background(), &Config{MinimumTotalScore: 2}, Deps{}, []Filter{NewMinimumTotalScore()}, sampleResults())

	require.NoError(t, err)
	assert.Equal(t, []string{"strong.txt", "no-go.txt", "failed.txt"}, documents(got))
}

func TestMinimumTotalScoreRejectsNegative(t *testing.T) {
	_, err := Run(context.Background(), &Config{MinimumTotalScore: -1}, Deps{}, []Filter{NewMinimumTotalScore()}, sampleResults())

	assert.ErrorContains(t, err, "minimum_total_score")
}

func TestRequiredCriteria(t *testing.T) {
	got, err := Run(context.Background(), &Config{RequiredCriteria: true}, Deps{}, []Filter{NewRequiredCriteria()}, sampleResults())

	require.NoError(t, err)
	assert.Equal(t, []string{"strong.txt", "weak.txt", "failed.txt"}, documents(got))
}

func TestErrored(t *testing.T) {
	got, err := Run(context.Background(), &Config{DropErrored: true}, Deps{}, []Filter{NewErrored()}, sampleResults())

	require.NoError(t, err)
	assert.Equal(t, []string{"strong.txt", "no-go.txt", "weak.txt"}, documents(got))
	assert.NoError(t, got.Err())
}

func TestExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous.json")
	report := `{"run_id": "old", "criteria": [], "candidates": [{"document": "weak.txt"}, {"document": "strong.txt"}]}`
	require.NoError(t, os.WriteFile(path, []byte(report), 0o600))

	got, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, []Filter{NewExcludeFile()}, sampleResults())

	require.NoError(t, err)
	assert.Equal(t, []string{"no-go.txt", "failed.txt"}, documents(got))
}

func TestExcludeFileErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o600))

	for _, path := range []string{broken, filepath.Join(dir, "missing.json")} {
		_, err := Run(context.Background(), &Config{ExcludeFile: path}, Deps{}, []Filter{NewExcludeFile()}, sampleResults())
		assert.ErrorContains(t, err, "exclude_file", path)
	}
}

func TestRunLogsSteps(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := &Config{DropErrored: true, MinimumTotalScore: 5}

	got, err := Run(context.Background(), cfg, Deps{Logger: zap.New(core)}, Defaults(), sampleResults())
	require.NoError(t, err)
	assert.Equal(t, []string{"strong.txt", "no-go.txt"}, documents(got))

	steps := logs.FilterMessage("filter step").All()
	require.Len(t, steps, 2)
	assert.Equal(t, "errored", steps[0].ContextMap()["name"])
	assert.Equal(t, int64(1), steps[0].ContextMap()["dropped"])
	assert.Equal(t, "minimum_total_score", steps[1].ContextMap()["name"])
	assert.Equal(t, int64(3), steps[1].ContextMap()["initial"])
	assert.Equal(t, int64(2), steps[1].ContextMap()["left"])
}

func TestDisableByName(t *testing.T) {
	steps := Defaults()
	assert.True(t, DisableByName(steps, "errored", "disabled by flag"))
	assert.False(t, DisableByName(steps, "ai_fit", "disabled by flag"))

	got, err := Run(context.Background(), &Config{DropErrored: true}, Deps{}, steps, sampleResults())
	require.NoError(t, err)
	assert.Equal(t, 4, got.Len())

	for _, status := range Describe(steps) {
		if status.Name == "errored" {
			assert.Equal(t, "disabled by flag", status.Reason)
		}
	}
}
