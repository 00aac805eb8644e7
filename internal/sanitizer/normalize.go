package sanitizer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
)

const gapJustification = "No score returned for this criterion"

// normalize drops blank and duplicate criteria (first occurrence wins), clamps
// scores and reconciles the result against canonical.
func (s *Sanitizer) normalize(entries []ai.CriterionScore, canonical ai.CriteriaList) ai.ScoreSet {
	seen := make(map[string]struct{}, len(entries)+len(canonical))
	out := make([]ai.CriterionScore, 0, len(entries)+len(canonical))

	for _, entry := range entries {
		criterion := strings.TrimSpace(entry.Criterion)
		if criterion == "" {
			continue
		}

		if _, dup := seen[criterion]; dup {
			s.logger.Debug("skipping duplicate criterion", zap.String("criterion", criterion))
			continue
		}
		seen[criterion] = struct{}{}

		score := clamp(entry.Score)
		if score != entry.Score {
			s.logger.Debug("score out of range, clamped",
				zap.String("criterion", criterion),
				zap.Int("score", entry.Score),
				zap.Int("clamped", score),
			)
		}

		out = append(out, ai.CriterionScore{
			Criterion:     criterion,
			Score:         score,
			Justification: strings.TrimSpace(entry.Justification),
		})
	}

	for _, criterion := range canonical {
		if _, ok := seen[criterion]; ok {
			continue
		}
		seen[criterion] = struct{}{}

		s.logger.Warn("no score for criterion, defaulting to 0", zap.String("criterion", criterion))
		out = append(out, ai.CriterionScore{
			Criterion:     criterion,
			Score:         ai.MinScore,
			Justification: gapJustification,
		})
	}

	return ai.ScoreSet{Entries: out}
}

func clamp(score int) int {
	if score < ai.MinScore {
		return ai.MinScore
	}
	if score > ai.MaxScore {
		return ai.MaxScore
	}
	return score
}

func dedupeStrings(items []string) ai.CriteriaList {
	seen := make(map[string]struct{}, len(items))
	out := make(ai.CriteriaList, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
