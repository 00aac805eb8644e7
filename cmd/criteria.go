package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Extract ranking criteria from a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		extractCriteria(cmd)
	},
}

func init() {
	rootCmd.AddCommand(criteriaCmd)

	criteriaCmd.Flags().String("job", "", "job description file (.txt, .md)")
	criteriaCmd.MarkFlagRequired("job")
}

// extractCriteria prints {"criteria": [...]} to stdout.
func extractCriteria(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	job, err := document.Load(stringFlag(cmd, "job"))
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	ranker, err := newRanker(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating ranker", zap.Error(err))
	}

	criteria, err := ranker.ExtractCriteria(ctx, job.Text)
	if err != nil {
		logger.Fatal("extracting criteria", zap.Error(err))
	}

	if len(criteria) == 0 {
		logger.Warn("no criteria extracted from job description", zap.String("document", job.Name))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"criteria": criteria}); err != nil {
		logger.Fatal("printing criteria", zap.Error(err))
	}
}
