package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/ranking"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resumes against a given list of criteria",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("criteria", "", `criteria as a JSON array, {"criteria": [...]} or a comma-separated list`)
	scoreCmd.MarkFlagRequired("criteria")
	addRankingFlags(scoreCmd)
}

func score(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	criteria, err := ranking.ParseCriteria(stringFlag(cmd, "criteria"))
	if err != nil {
		logger.Fatal("parsing criteria", zap.Error(err))
	}
	logger.Info("parsed criteria", zap.Int("count", len(criteria)))

	resumes, err := document.LoadAll(stringSliceFlag(cmd, "resume"))
	if err != nil {
		logger.Warn("some resumes could not be loaded, they are reported as failed", zap.Error(err))
	}

	ranker, err := newRanker(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating ranker", zap.Error(err))
	}

	finish(ctx, cmd, config, logger, ranker.Rank(ctx, criteria, resumes))
}
