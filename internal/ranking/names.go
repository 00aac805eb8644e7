package ranking

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/names"
	"github.com/spigell/resume-ranker/internal/retry"
)

// NameExtractor finds the candidate name in a resume.
type NameExtractor struct {
	invoker
}

func NewNameExtractor(agent ai.Agent, policy retry.Policy, l *zap.Logger) *NameExtractor {
	return &NameExtractor{invoker: newInvoker(agent, policy, l)}
}

// Extract never fails: agent and parse failures are reported through the
// result source and fall back to filename.
func (n *NameExtractor) Extract(ctx context.Context, resume, filename string) ai.NameExtractionResult {
	if strings.TrimSpace(resume) == "" {
		return ai.NameExtractionResult{Name: filename, Source: ai.SourceEmptyResult}
	}

	raw, err := n.invoke(ctx, ai.PromptContext{
		ai.KeyTask:          ai.TaskExtractName,
		ai.KeyResumeContent: resume,
		ai.KeyFilename:      filename,
	})
	if err != nil {
		n.logger.Error("name extraction failed", zap.String(logger.FieldDocument, filename), zap.Error(err))
		return ai.NameExtractionResult{Name: filename, Source: ai.SourceError}
	}

	proposal, err := names.ParseProposal(raw)
	if err != nil {
		n.logger.Warn("could not parse name extraction response", zap.String(logger.FieldDocument, filename), zap.Error(err))
		return ai.NameExtractionResult{Name: filename, Source: ai.SourceParseError}
	}

	result := names.Validate(proposal, filename)
	if !result.Source.Extracted() {
		n.logger.Warn("proposed name rejected",
			zap.String(logger.FieldDocument, filename),
			zap.String("proposed", proposal.Name),
			zap.Int("confidence", proposal.Confidence),
			zap.String("source", string(result.Source)),
		)
	}

	return result
}
