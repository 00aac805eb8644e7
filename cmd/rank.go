package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/document"
	"github.com/spigell/resume-ranker/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Extract criteria from a job description and rank resumes against them",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "job description file (.txt, .md)")
	rankCmd.MarkFlagRequired("job")
	addRankingFlags(rankCmd)
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	job, err := document.Load(stringFlag(cmd, "job"))
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	resumes, err := document.LoadAll(stringSliceFlag(cmd, "resume"))
	if err != nil {
		logger.Warn("some resumes could not be loaded, they are reported as failed", zap.Error(err))
	}

	ranker, err := newRanker(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating ranker", zap.Error(err))
	}

	results, err := ranker.RankFromJob(ctx, job.Text, resumes)
	if errors.Is(err, ranking.ErrNoCriteria) {
		logger.Info("exiting", zap.String("reason", "no criteria extracted from job description"))
		return
	}
	if err != nil {
		logger.Fatal("ranking resumes", zap.Error(err))
	}

	finish(ctx, cmd, config, logger, results)
}
