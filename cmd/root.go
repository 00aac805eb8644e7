package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-ranker/internal/filtering"
)

const (
	app = "resume-ranker"
)

type Config struct {
	Gemini  *GeminiConfig     `mapstructure:"gemini" validate:"required"`
	Ranking *RankingConfig    `mapstructure:"ranking" validate:"required"`
	Filters *filtering.Config `mapstructure:"filters"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model" validate:"required"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type RankingConfig struct {
	Concurrency    int           `mapstructure:"concurrency" validate:"gte=0,lte=64"`
	MaxRetries     int           `mapstructure:"max-retries" validate:"gte=1,lte=10"`
	RetryDelay     time.Duration `mapstructure:"retry-delay" validate:"gte=0"`
	AttemptTimeout time.Duration `mapstructure:"attempt-timeout" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker extracts ranking criteria from job descriptions and scores resumes against them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"gemini.api-key":      "GEMINI_API_KEY",
		"gemini.api-key-file": "GEMINI_API_KEY_FILE",
		"gemini.model":        "GEMINI_MODEL",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.max-log-length", 200)
	viper.SetDefault("ranking.concurrency", 4)
	viper.SetDefault("ranking.max-retries", 3)
	viper.SetDefault("ranking.retry-delay", 2*time.Second)
	viper.SetDefault("ranking.attempt-timeout", 2*time.Minute)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, defaults and environment are enough to run.
	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is empty")
	}
	if config.Filters == nil {
		config.Filters = &filtering.Config{}
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
