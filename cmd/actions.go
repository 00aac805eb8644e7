package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/filtering"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/report"
)

const (
	PromptShowRanking      = "Show ranking"
	PromptCandidateDetails = "Show candidate details"
	PromptFilters          = "Show filters"
	PromptCSVToFile        = "Write CSV report"
	PromptResultsToFile    = "Dump JSON report to file"
	PromptExit             = "Exit"
	PromptBack             = "back"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowRanking, PromptCandidateDetails, PromptFilters, PromptCSVToFile, PromptResultsToFile, PromptExit},
}

// addRankingFlags registers the flags shared by score and rank.
func addRankingFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("resume", nil, "resume file (.txt, .md), repeat or separate with commas")
	cmd.MarkFlagRequired("resume")
	cmd.Flags().String("csv", "", "write the CSV report to this file")
	cmd.Flags().String("report", "", "write the JSON report to this file")
	cmd.Flags().BoolP("auto-approve", "y", false, "do not show the interactive menu")

	cmd.Flags().Int("min-score", 0, "drop candidates with a lower total score")
	cmd.Flags().Bool("required", false, "drop candidates scoring 0 on a [Required] criterion")
	cmd.Flags().Bool("drop-errored", false, "drop candidates that could not be scored")
	cmd.Flags().StringP("exclude-file", "e", "", "JSON report with candidates to skip")
	cmd.Flags().StringSlice("no-filter", nil, "disable a filter by name even if it is configured")

	cmd.PreRun = bindFilterFlags
}

// bindFilterFlags lets filter flags override the config file. Binding happens
// per command because score and rank define the same flag names.
func bindFilterFlags(cmd *cobra.Command, _ []string) {
	for key, flag := range map[string]string{
		"filters.minimum-total-score": "min-score",
		"filters.required-criteria":   "required",
		"filters.drop-errored":        "drop-errored",
		"filters.exclude-file":        "exclude-file",
	} {
		viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

func disableFilters(steps []filtering.Filter, names []string, logger *zap.Logger) {
	for _, name := range names {
		if !filtering.DisableByName(steps, strings.TrimSpace(name), "disabled by --no-filter") {
			logger.Warn("unknown filter, ignoring", zap.String("filter", name))
		}
	}
}

// finish filters the results, writes the requested reports and runs the action menu.
func finish(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger, results *ranking.Results) {
	steps := filtering.Defaults()
	disableFilters(steps, stringSliceFlag(cmd, "no-filter"), logger)

	results, err := filtering.Run(ctx, config.Filters, filtering.Deps{Logger: logger}, steps, results)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	printRanking(results)

	if path := stringFlag(cmd, "csv"); path != "" {
		if err := report.WriteFile(path, results, report.WriteCSV); err != nil {
			logger.Fatal("writing csv report", zap.Error(err))
		}
		logger.Info("csv report written", zap.String("filename", path))
	}

	if path := stringFlag(cmd, "report"); path != "" {
		if err := report.WriteFile(path, results, report.WriteJSON); err != nil {
			logger.Fatal("writing json report", zap.Error(err))
		}
		logger.Info("json report written", zap.String("filename", path))
	}

	if approved, _ := cmd.Flags().GetBool("auto-approve"); approved {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, steps, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, steps []filtering.Filter, results *ranking.Results) error {
	switch action {
	case PromptShowRanking:
		printRanking(results)
		return nil
	case PromptCandidateDetails:
		return candidateDetails(results)
	case PromptFilters:
		for _, status := range filtering.Describe(steps) {
			logger.Info("filter",
				zap.String("name", status.Name),
				zap.Bool("enabled", status.Enabled),
				zap.String("reason", status.Reason),
				zap.Any("details", status.Details),
			)
		}
		return nil
	case PromptCSVToFile:
		filePrompt := promptui.Prompt{Label: "CSV file", Default: "resume_scores.csv"}
		path, err := filePrompt.Run()
		if err != nil {
			return err
		}
		if err := report.WriteFile(path, results, report.WriteCSV); err != nil {
			return fmt.Errorf("write csv report: %w", err)
		}
		logger.Info("csv report written", zap.String("filename", path))
		return nil
	case PromptResultsToFile:
		filename, err := report.DumpToTmpFile(results)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func candidateDetails(results *ranking.Results) error {
	for {
		items := make([]string, 0, results.Len()+1)
		for i, c := range results.Candidates {
			items = append(items, fmt.Sprintf("%d. %s / %s / %d", i+1, c.Name, c.Document, c.Total))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		printCandidate(results.Candidates[idx])
	}
}

func printRanking(results *ranking.Results) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCANDIDATE\tDOCUMENT\tTOTAL\tERROR")
	for i, c := range results.Candidates {
		errMsg := ""
		if c.Failed() {
			errMsg = c.Err.Error()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", i+1, c.Name, c.Document, c.Total, errMsg)
	}
	w.Flush()
}

func printCandidate(c *ranking.Candidate) {
	fmt.Printf("%s (%s)\n", c.Name, c.Document)
	fmt.Printf("name source: %s, confidence: %d\n", c.NameInfo.Source, c.NameInfo.Confidence)
	if c.Failed() {
		fmt.Printf("error: %s\n", c.Err)
		return
	}

	for _, entry := range c.Scores.Entries {
		line := fmt.Sprintf("  %d/5  %s", entry.Score, report.ColumnTitle(entry.Criterion))
		if entry.Justification != "" {
			line += " - " + entry.Justification
		}
		fmt.Println(line)
	}
	fmt.Printf("total: %d\n", c.Total)
	fmt.Println(strings.Repeat("-", 40))
}
