package ranking

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/retry"
	"github.com/spigell/resume-ranker/internal/sanitizer"
)

// Scorer scores a resume against a list of criteria.
type Scorer struct {
	invoker
	sanitizer *sanitizer.Sanitizer
}

func NewScorer(agent ai.Agent, s *sanitizer.Sanitizer, policy retry.Policy, l *zap.Logger) *Scorer {
	inv := newInvoker(agent, policy, l)
	if s == nil {
		s = sanitizer.New(inv.logger, 0)
	}
	return &Scorer{invoker: inv, sanitizer: s}
}

// Score returns one entry per criterion. Unparseable agent output never fails
// the call; it degrades to zero scores.
func (s *Scorer) Score(ctx context.Context, resume string, criteria ai.CriteriaList) (ai.ScoreSet, error) {
	if strings.TrimSpace(resume) == "" {
		return ai.ScoreSet{}, &InputError{Field: ai.KeyResumeContent, Message: "must not be empty"}
	}
	if len(criteria) == 0 {
		return ai.ScoreSet{}, &InputError{Field: ai.KeyCriteria, Message: "must not be empty"}
	}

	raw, err := s.invoke(ctx, ai.PromptContext{
		ai.KeyTask:          ai.TaskScoreResume,
		ai.KeyResumeContent: resume,
		ai.KeyCriteria:      criteria,
	})
	if err != nil {
		return ai.ScoreSet{}, err
	}

	return s.sanitizer.Scores(raw, criteria), nil
}
