package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/retry"
)

func TestGetConfigDefaults(t *testing.T) {
	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash", config.Gemini.Model)
	assert.Equal(t, 3, config.Ranking.MaxRetries)
	assert.Equal(t, 2*time.Second, config.Ranking.RetryDelay)
	assert.NotNil(t, config.Filters)
}

func TestGetConfigValidation(t *testing.T) {
	viper.Set("ranking.max-retries", 0)
	t.Cleanup(func() { viper.Set("ranking.max-retries", 3) })

	_, err := getConfig()
	assert.ErrorContains(t, err, "MaxRetries")
}

func TestHandleAction(t *testing.T) {
	results := &ranking.Results{Candidates: []*ranking.Candidate{{Document: "a.txt", Name: "A"}}}
	steps := filtering.Defaults()

	assert.True(t, errors.Is(handleAction(PromptExit, zap.NewNop(), steps, results), errExit))
	assert.NoError(t, handleAction(PromptFilters, zap.NewNop(), steps, results))
	assert.ErrorContains(t, handleAction("dance", zap.NewNop(), steps, results), "invalid action")
}

func TestDisableFilters(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	steps := filtering.Defaults()

	disableFilters(steps, []string{" errored", "unknown"}, zap.New(core))

	for _, status := range filtering.Describe(steps) {
		if status.Name == "errored" {
			assert.False(t, status.Enabled)
			assert.Equal(t, "disabled by --no-filter", status.Reason)
		}
	}

	entries := logs.FilterMessage("unknown filter, ignoring").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unknown", entries[0].ContextMap()["filter"])
}

func TestRetryPolicy(t *testing.T) {
	policy := retryPolicy(nil, nil)
	assert.Equal(t, retry.DefaultAttempts, policy.Attempts)
	assert.Equal(t, retry.DefaultBaseDelay, policy.BaseDelay)

	policy = retryPolicy(&RankingConfig{MaxRetries: 5, AttemptTimeout: time.Minute}, nil)
	assert.Equal(t, 5, policy.Attempts)
	assert.Equal(t, retry.DefaultBaseDelay, policy.BaseDelay)
	assert.Equal(t, time.Minute, policy.AttemptTimeout)
}
