// Package filtering narrows ranked candidates down with configurable steps.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
)

const notConfiguredReason = "not configured"

// Filter represents a single filtering step applied to ranked candidates.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Validate reads the step settings from cfg. A step with nothing to do
	// disables itself.
	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *ranking.Results) (*ranking.Results, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	// MinimumTotalScore drops candidates with a lower total. Zero disables the step.
	MinimumTotalScore int `mapstructure:"minimum-total-score" validate:"gte=0"`
	// RequiredCriteria drops candidates scoring 0 on a "[Required]" criterion.
	RequiredCriteria bool `mapstructure:"required-criteria"`
	// DropErrored drops candidates that could not be scored.
	DropErrored bool `mapstructure:"drop-errored"`
	// ExcludeFile points to a JSON report whose candidates are skipped.
	ExcludeFile string `mapstructure:"exclude-file"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Defaults returns every known filter in execution order.
func Defaults() []Filter {
	return []Filter{
		NewExcludeFile(),
		NewErrored(),
		NewRequiredCriteria(),
		NewMinimumTotalScore(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
// It reports whether such a filter exists.
func DisableByName(steps []Filter, name, reason string) bool {
	found := false
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
			found = true
		}
	}
	return found
}

// Run validates every step and then applies the enabled ones in order.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, r *ranking.Results) (*ranking.Results, error) {
	log := logger.OrNop(deps.Logger)
	deps.Logger = log

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			log.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
	}

	return r, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// toggle carries the enable/disable state shared by all filters.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// apply keeps the candidates accepted by keep and reports the dropped ones.
func apply(r *ranking.Results, keep func(*ranking.Candidate) bool) (*ranking.Results, Step, []string) {
	var dropped []string
	next := r.Keep(func(c *ranking.Candidate) bool {
		if keep(c) {
			return true
		}
		dropped = append(dropped, c.Document)
		return false
	})

	return next, Step{Initial: r.Len(), Dropped: len(dropped), Left: next.Len()}, dropped
}
