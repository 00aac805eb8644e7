package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai/gemini"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/retry"
	"github.com/spigell/resume-ranker/internal/secrets"
)

const providerGemini = "gemini"

// setup builds the logger and the validated config shared by all commands.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", resolveVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

func newRanker(ctx context.Context, config *Config, l *zap.Logger) (*ranking.Ranker, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  config.Gemini.APIKeyFile,
		Value: config.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		return nil, err
	}

	aiLogger := logger.WithCommonFields(l, providerGemini, generator.Model())

	agent, err := gemini.NewAgent(generator, aiLogger, config.Gemini.MaxLogLength)
	if err != nil {
		return nil, err
	}

	return ranking.NewRanker(agent, ranking.Config{
		Concurrency:  config.Ranking.Concurrency,
		Retry:        retryPolicy(config.Ranking, aiLogger),
		MaxLogLength: config.Gemini.MaxLogLength,
	}, aiLogger), nil
}

// retryPolicy starts from the default agent policy and applies the configured overrides.
func retryPolicy(cfg *RankingConfig, l *zap.Logger) retry.Policy {
	policy := retry.DefaultPolicy(l)
	if cfg == nil {
		return policy
	}
	if cfg.MaxRetries > 0 {
		policy.Attempts = cfg.MaxRetries
	}
	if cfg.RetryDelay > 0 {
		policy.BaseDelay = cfg.RetryDelay
	}
	policy.AttemptTimeout = cfg.AttemptTimeout
	return policy
}

// stringSliceFlag reads a repeatable string flag.
func stringSliceFlag(cmd *cobra.Command, name string) []string {
	values, _ := cmd.Flags().GetStringSlice(name)
	return values
}

func stringFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}
