// Package ranking extracts criteria from job descriptions and ranks resumes
// against them.
package ranking

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/names"
	"github.com/spigell/resume-ranker/internal/retry"
	"github.com/spigell/resume-ranker/internal/sanitizer"
)

// Config tunes a Ranker.
type Config struct {
	// Concurrency limits how many resumes are processed at once.
	Concurrency int
	Retry       retry.Policy
	// MaxLogLength bounds response previews in logs.
	MaxLogLength int
}

// Ranker scores batches of resumes.
type Ranker struct {
	criteria    *CriteriaExtractor
	names       *NameExtractor
	scorer      *Scorer
	concurrency int
	logger      *zap.Logger
}

func NewRanker(agent ai.Agent, cfg Config, l *zap.Logger) *Ranker {
	l = logger.OrNop(l)
	s := sanitizer.New(l, cfg.MaxLogLength)

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	return &Ranker{
		criteria:    NewCriteriaExtractor(agent, s, cfg.Retry, l),
		names:       NewNameExtractor(agent, cfg.Retry, l),
		scorer:      NewScorer(agent, s, cfg.Retry, l),
		concurrency: concurrency,
		logger:      l,
	}
}

// ExtractCriteria extracts ranking criteria from a job description.
func (r *Ranker) ExtractCriteria(ctx context.Context, jobDescription string) (ai.CriteriaList, error) {
	return r.criteria.Extract(ctx, jobDescription)
}

// RankFromJob extracts criteria from jobDescription and ranks resumes against them.
func (r *Ranker) RankFromJob(ctx context.Context, jobDescription string, resumes []document.Document) (*Results, error) {
	criteria, err := r.criteria.Extract(ctx, jobDescription)
	if err != nil {
		return nil, err
	}
	if len(criteria) == 0 {
		return nil, ErrNoCriteria
	}

	return r.Rank(ctx, criteria, resumes), nil
}

// Rank scores every resume against criteria. A failing resume, including one
// that could not be loaded, is recorded on its candidate and never stops the
// batch. Totals count only the given criteria.
func (r *Ranker) Rank(ctx context.Context, criteria ai.CriteriaList, resumes []document.Document) *Results {
	runID := uuid.NewString()
	log := r.logger.With(zap.String(logger.FieldRunID, runID))
	log.Info("ranking resumes",
		zap.Int("resumes", len(resumes)),
		zap.Int("criteria", len(criteria)),
		zap.Int("concurrency", r.concurrency),
	)
	start := time.Now()

	candidates := make([]*Candidate, len(resumes))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, doc := range resumes {
		g.Go(func() error {
			candidates[i] = r.rankOne(ctx, log, criteria, doc)
			return nil
		})
	}
	_ = g.Wait()

	sortCandidates(candidates)
	results := &Results{RunID: runID, Criteria: criteria, Candidates: candidates}

	if err := results.Err(); err != nil {
		log.Warn("some resumes could not be scored",
			zap.Int("failed", len(results.Failed())),
			zap.Error(err),
		)
	}
	log.Info("ranking finished",
		zap.Int("candidates", results.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results
}

func (r *Ranker) rankOne(ctx context.Context, log *zap.Logger, criteria ai.CriteriaList, doc document.Document) *Candidate {
	log = logger.WithFields(log, zap.String(logger.FieldDocument, doc.Name))
	start := time.Now()

	candidate := &Candidate{Document: doc.Name}

	if doc.Failed() {
		candidate.Err = doc.Err
		candidate.NameInfo = ai.NameExtractionResult{Name: doc.Name, Source: ai.SourceError}
		candidate.Name = displayName(candidate.NameInfo, doc.Name)
		log.Error("failed to load resume", zap.Error(doc.Err))
		return candidate
	}

	candidate.NameInfo = r.names.Extract(ctx, doc.Text, doc.Name)
	candidate.Name = displayName(candidate.NameInfo, doc.Name)
	if !candidate.NameInfo.Source.Extracted() {
		log.Warn("using file name as candidate name", zap.String("name", candidate.Name))
	}

	scores, err := r.scorer.Score(ctx, doc.Text, criteria)
	if err != nil {
		candidate.Err = err
		log.Error("failed to score resume", zap.Error(err))
	} else {
		candidate.Scores = scores
		candidate.Total = scores.TotalOf(criteria)
	}

	candidate.Duration = time.Since(start)
	log.Info("resume processed",
		zap.String("name", candidate.Name),
		zap.Int("total", candidate.Total),
		zap.Duration("elapsed", candidate.Duration),
	)

	return candidate
}

func displayName(result ai.NameExtractionResult, filename string) string {
	if result.Source.Extracted() && result.Confidence >= names.MinConfidence && strings.TrimSpace(result.Name) != "" {
		return result.Name
	}
	if name := names.FromFilename(filename); name != "" {
		return name
	}
	return filename
}
