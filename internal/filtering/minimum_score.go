package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranking"
)

type minimumTotalScoreFilter struct {
	toggle
	threshold int
}

// NewMinimumTotalScore creates a filter that removes candidates below a total score.
func NewMinimumTotalScore() Filter {
	return &minimumTotalScoreFilter{}
}

func (f *minimumTotalScoreFilter) Name() string { return "minimum_total_score" }

func (f *minimumTotalScoreFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg != nil {
		f.threshold = cfg.MinimumTotalScore
	}
	if f.threshold < 0 {
		return fmt.Errorf("minimum total score must not be negative, got %d", f.threshold)
	}
	if f.threshold == 0 {
		f.Disable(notConfiguredReason)
	}
	return nil
}

func (f *minimumTotalScoreFilter) Apply(_ context.Context, deps Deps, r *ranking.Results) (*ranking.Results, Step, error) {
	next, step, dropped := apply(r, func(c *ranking.Candidate) bool {
		return c.Failed() || c.Total >= f.threshold
	})

	if len(dropped) > 0 {
		deps.Logger.Info("excluding candidates below minimum total score",
			zap.Int("threshold", f.threshold),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", next.Len()),
		)
	}

	return next, step, nil
}

func (f *minimumTotalScoreFilter) Status() Status {
	details := map[string]string{}
	if f.threshold > 0 {
		details["threshold"] = strconv.Itoa(f.threshold)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
