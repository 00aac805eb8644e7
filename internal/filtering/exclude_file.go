package filtering

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ranking"
)

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes candidates already present in
// a previous JSON report.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	if f.path == "" {
		f.Disable(notConfiguredReason)
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, r *ranking.Results) (*ranking.Results, Step, error) {
	excluded, err := excludedDocuments(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	next, step, dropped := apply(r, func(c *ranking.Candidate) bool {
		_, skip := excluded[c.Document]
		return !skip
	})

	if len(dropped) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", next.Len()),
		)
	}

	return next, step, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

// excludedDocuments reads the document names of a JSON report. An empty file
// excludes nothing.
func excludedDocuments(path string) (map[string]struct{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]struct{})
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s is not a valid JSON report", path)
	}

	for _, doc := range gjson.GetBytes(data, "candidates.#.document").Array() {
		if name := strings.TrimSpace(doc.String()); name != "" {
			out[name] = struct{}{}
		}
	}
	return out, nil
}
