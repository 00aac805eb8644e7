// Package sanitizer recovers structured results from unreliable model output.
//
// Recovery is a waterfall of tiers: each tier is a pure function from the raw
// text to candidate records, and a later tier runs only when every earlier one
// produced nothing. Whatever a tier yields is then normalized. Nothing in this
// package returns an error; total failure degrades to an empty (or all-zero)
// result and the caller decides whether that is fatal.
package sanitizer

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/utils"
)

const defaultMaxLogLength = 200

// Sanitizer turns raw agent responses into score sets and criteria lists.
// It holds no per-call state and is safe for concurrent use.
type Sanitizer struct {
	logger    *zap.Logger
	maxLogLen int
}

// New creates a Sanitizer. A nil logger disables logging.
func New(l *zap.Logger, maxLogLength int) *Sanitizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Sanitizer{
		logger:    logger.OrNop(l),
		maxLogLen: maxLogLength,
	}
}

// Scores recovers a score set from raw. When canonical is non-empty the result
// contains every canonical criterion (missing ones score 0); criteria the model
// invented are kept. With an empty canonical list the cleaned sequence is
// returned as is.
func (s *Sanitizer) Scores(raw string, canonical ai.CriteriaList) ai.ScoreSet {
	for _, tier := range scoreTiers {
		entries := tier.recover(raw, canonical)
		if len(entries) == 0 {
			continue
		}

		s.logger.Debug("recovered scores from agent response",
			zap.String("tier", tier.name),
			zap.Int("entries", len(entries)),
		)
		if tier.name != tierDirect {
			s.logger.Warn("agent response was not valid JSON, used fallback recovery",
				zap.String("tier", tier.name),
				zap.Int("response_length", utf8.RuneCountInString(raw)),
				zap.String("response_preview", utils.TruncateForLog(utils.OneLine(raw), s.maxLogLen)),
			)
		}

		return s.normalize(entries, canonical)
	}

	s.logger.Warn("could not recover any score data from agent response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(utils.OneLine(raw), s.maxLogLen)),
	)

	return s.normalize(nil, canonical)
}

// Criteria recovers a list of criteria from raw. This is the no-canonical-list
// mode used for criteria extraction.
func (s *Sanitizer) Criteria(raw string) ai.CriteriaList {
	for _, tier := range criteriaTiers {
		items := dedupeStrings(tier.recover(raw))
		if len(items) == 0 {
			continue
		}

		s.logger.Debug("recovered criteria from agent response",
			zap.String("tier", tier.name),
			zap.Int("criteria", len(items)),
		)

		return items
	}

	s.logger.Warn("could not recover any criteria from agent response",
		zap.String("response_preview", utils.TruncateForLog(utils.OneLine(raw), s.maxLogLen)),
	)

	return ai.CriteriaList{}
}
