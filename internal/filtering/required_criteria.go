package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranking"
)

// RequiredPrefix marks criteria a candidate must not score 0 on.
const RequiredPrefix = "[Required]"

type requiredCriteriaFilter struct {
	toggle
}

// NewRequiredCriteria creates a filter that removes candidates lacking any required criterion.
func NewRequiredCriteria() Filter {
	return &requiredCriteriaFilter{}
}

func (f *requiredCriteriaFilter) Name() string { return "required_criteria" }

func (f *requiredCriteriaFilter) Validate(cfg *Config) error {
	if cfg == nil || !cfg.RequiredCriteria {
		f.Disable(notConfiguredReason)
	}
	return nil
}

func (f *requiredCriteriaFilter) Apply(_ context.Context, deps Deps, r *ranking.Results) (*ranking.Results, Step, error) {
	var required []string
	for _, criterion := range r.Criteria {
		if strings.HasPrefix(criterion, RequiredPrefix) {
			required = append(required, criterion)
		}
	}

	if len(required) == 0 {
		return r, Step{Initial: r.Len(), Left: r.Len()}, nil
	}

	next, step, dropped := apply(r, func(c *ranking.Candidate) bool {
		if c.Failed() {
			return true
		}
		for _, criterion := range required {
			if score, _ := c.Scores.Score(criterion); score == 0 {
				return false
			}
		}
		return true
	})

	if len(dropped) > 0 {
		deps.Logger.Info("excluding candidates missing required criteria",
			zap.Strings("required_criteria", required),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", next.Len()),
		)
	}

	return next, step, nil
}

func (f *requiredCriteriaFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
