package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranking"
)

type erroredFilter struct {
	toggle
}

// NewErrored creates a filter that removes candidates whose resume could not be scored.
func NewErrored() Filter {
	return &erroredFilter{}
}

func (f *erroredFilter) Name() string { return "errored" }

func (f *erroredFilter) Validate(cfg *Config) error {
	if cfg == nil || !cfg.DropErrored {
		f.Disable(notConfiguredReason)
	}
	return nil
}

func (f *erroredFilter) Apply(_ context.Context, deps Deps, r *ranking.Results) (*ranking.Results, Step, error) {
	next, step, dropped := apply(r, func(c *ranking.Candidate) bool {
		return !c.Failed()
	})

	if len(dropped) > 0 {
		deps.Logger.Info("excluding candidates that could not be scored",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", next.Len()),
		)
	}

	return next, step, nil
}

func (f *erroredFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
