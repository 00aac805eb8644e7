package ranking

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/retry"
)

// invoker calls an agent through the retry wrapper.
type invoker struct {
	agent  ai.Agent
	policy retry.Policy
	logger *zap.Logger
}

func newInvoker(agent ai.Agent, policy retry.Policy, l *zap.Logger) invoker {
	l = logger.OrNop(l)
	if policy.Logger == nil {
		policy.Logger = l
	}
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return invoker{agent: agent, policy: policy, logger: l}
}

func (i invoker) invoke(ctx context.Context, pc ai.PromptContext) (string, error) {
	policy := i.policy
	policy.Operation = pc.Task()

	raw, err := retry.DoWithValue(ctx, policy, func(ctx context.Context) (string, error) {
		return i.agent.Invoke(ctx, pc)
	})
	if err != nil {
		return "", &AgentError{Task: pc.Task(), Attempts: policy.Attempts, Cause: err}
	}

	return raw, nil
}
