package ranking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/retry"
	"github.com/spigell/resume-ranker/internal/sanitizer"
)

// CriteriaExtractor turns a job description into ranking criteria.
type CriteriaExtractor struct {
	invoker
	sanitizer *sanitizer.Sanitizer
}

func NewCriteriaExtractor(agent ai.Agent, s *sanitizer.Sanitizer, policy retry.Policy, l *zap.Logger) *CriteriaExtractor {
	inv := newInvoker(agent, policy, l)
	if s == nil {
		s = sanitizer.New(inv.logger, 0)
	}
	return &CriteriaExtractor{invoker: inv, sanitizer: s}
}

// Extract asks the agent for criteria. An empty list is a valid result, the
// caller decides whether it is fatal.
func (e *CriteriaExtractor) Extract(ctx context.Context, jobDescription string) (ai.CriteriaList, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &InputError{Field: ai.KeyJobDescription, Message: "must not be empty"}
	}

	e.logger.Info("extracting criteria from job description", zap.Int("length", len(jobDescription)))
	start := time.Now()

	raw, err := e.invoke(ctx, ai.PromptContext{
		ai.KeyTask:           ai.TaskExtractCriteria,
		ai.KeyJobDescription: jobDescription,
	})
	if err != nil {
		return nil, err
	}

	criteria := e.sanitizer.Criteria(raw)
	e.logger.Info("criteria extracted",
		zap.Int("criteria", len(criteria)),
		zap.Duration("elapsed", time.Since(start)),
	)
	for i, criterion := range criteria {
		e.logger.Debug("criterion", zap.Int("index", i+1), zap.String("criterion", criterion))
	}

	return criteria, nil
}

// ParseCriteria reads criteria supplied by a user: a JSON array, a JSON object
// with a "criteria" array, or a comma-separated list.
func ParseCriteria(input string) (ai.CriteriaList, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, &InputError{Field: ai.KeyCriteria, Message: "must not be empty"}
	}

	var items []string
	if gjson.Valid(input) {
		doc := gjson.Parse(input)
		switch {
		case doc.IsArray():
		case doc.IsObject() && doc.Get("criteria").IsArray():
			doc = doc.Get("criteria")
		default:
			return nil, &InputError{Field: ai.KeyCriteria, Message: "expected an array or an object with a criteria array"}
		}

		var bad error
		doc.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.String {
				bad = &InputError{Field: ai.KeyCriteria, Message: fmt.Sprintf("criterion %s is not a string", item.Raw)}
				return false
			}
			items = append(items, item.Str)
			return true
		})
		if bad != nil {
			return nil, bad
		}
	} else {
		items = strings.Split(input, ",")
	}

	criteria := make(ai.CriteriaList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			criteria = append(criteria, item)
		}
	}
	if len(criteria) == 0 {
		return nil, &InputError{Field: ai.KeyCriteria, Message: "no valid criteria provided"}
	}

	return criteria, nil
}
