package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSetAccessors(t *testing.T) {
	set := ScoreSet{Entries: []CriterionScore{
		{Criterion: "Go", Score: 4, Justification: "years of Go"},
		{Criterion: "SQL", Score: 2},
	}}

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 6, set.Total())
	assert.Equal(t, 4, set.TotalOf(CriteriaList{"Go", "Rust"}))
	assert.Zero(t, set.TotalOf(nil))
	assert.Equal(t, CriteriaList{"Go", "SQL"}, set.Criteria())
	assert.Equal(t, map[string]int{"Go": 4, "SQL": 2}, set.Map())

	score, ok := set.Score("SQL")
	assert.True(t, ok)
	assert.Equal(t, 2, score)

	_, ok = set.Score("Rust")
	assert.False(t, ok)

	entry, ok := set.Entry("Go")
	assert.True(t, ok)
	assert.Equal(t, "years of Go", entry.Justification)
}

func TestNameSourceExtracted(t *testing.T) {
	assert.True(t, SourceContentExtraction.Extracted())
	assert.True(t, NameSource("resume header").Extracted())
	assert.False(t, SourceFilenameFallback.Extracted())
	assert.False(t, SourceParseError.Extracted())
	assert.False(t, SourceError.Extracted())
}

func TestPromptContextTask(t *testing.T) {
	assert.Equal(t, TaskScoreResume, PromptContext{KeyTask: TaskScoreResume}.Task())
	assert.Equal(t, "", PromptContext{KeyTask: 42}.Task())
}

func TestAgentFunc(t *testing.T) {
	var agent Agent = AgentFunc(func(_ context.Context, pc PromptContext) (string, error) {
		return "task=" + pc.Task(), nil
	})

	out, err := agent.Invoke(context.Background(), PromptContext{KeyTask: TaskExtractName})
	assert.NoError(t, err)
	assert.Equal(t, "task=extract_name", out)
	assert.True(t, CriteriaList{"a", "b"}.Contains("b"))
	assert.False(t, CriteriaList{"a"}.Contains("c"))
}
