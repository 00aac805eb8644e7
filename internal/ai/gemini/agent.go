package gemini

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/utils"
)

const defaultMaxLogLength = 200

//go:embed tasks.yaml
var tasksYAML []byte

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type taskDefinition struct {
	Role           string `yaml:"role"`
	Goal           string `yaml:"goal"`
	Instructions   string `yaml:"instructions"`
	ExpectedOutput string `yaml:"expected_output"`
}

type taskInput struct {
	Task           string   `mapstructure:"task"`
	JobDescription string   `mapstructure:"job_description"`
	ResumeContent  string   `mapstructure:"resume_content"`
	Criteria       []string `mapstructure:"criteria"`
	Filename       string   `mapstructure:"filename"`
}

// Agent renders task prompts and sends them to a Gemini generator.
type Agent struct {
	generator contentGenerator
	tasks     map[string]taskDefinition
	logger    *zap.Logger
	maxLogLen int
}

// NewAgent creates an Agent with the built-in task definitions.
func NewAgent(generator contentGenerator, l *zap.Logger, maxLogLength int) (*Agent, error) {
	tasks, err := loadTasks(tasksYAML)
	if err != nil {
		return nil, err
	}

	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Agent{
		generator: generator,
		tasks:     tasks,
		logger:    logger.OrNop(l),
		maxLogLen: maxLogLength,
	}, nil
}

func loadTasks(data []byte) (map[string]taskDefinition, error) {
	tasks := make(map[string]taskDefinition)
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task definitions: %w", err)
	}
	return tasks, nil
}

// Invoke renders the prompt for the task named in pc and returns the raw model response.
func (a *Agent) Invoke(ctx context.Context, pc ai.PromptContext) (string, error) {
	var input taskInput
	if err := mapstructure.Decode(map[string]any(pc), &input); err != nil {
		return "", fmt.Errorf("decode prompt context: %w", err)
	}

	prompt, err := a.render(input)
	if err != nil {
		return "", err
	}

	fields := logger.DocumentFields(input.Task, input.Filename)

	a.logger.Debug("gemini generate content request", append(fields,
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)...)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini generate content response", append(fields,
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)...)

	return raw, nil
}

func (a *Agent) render(input taskInput) (string, error) {
	task, ok := a.tasks[input.Task]
	if !ok {
		return "", fmt.Errorf("unknown task %q", input.Task)
	}

	instructions := strings.NewReplacer(
		"{{job_description}}", input.JobDescription,
		"{{resume_content}}", input.ResumeContent,
		"{{filename}}", input.Filename,
		"{{criteria}}", formatCriteria(input.Criteria),
	).Replace(task.Instructions)

	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s.\nGoal: %s\n\n", strings.TrimSpace(task.Role), strings.TrimSpace(task.Goal))
	b.WriteString(strings.TrimSpace(instructions))
	b.WriteString("\n\nExpected output:\n")
	b.WriteString(strings.TrimSpace(task.ExpectedOutput))

	return b.String(), nil
}

func formatCriteria(criteria []string) string {
	if len(criteria) == 0 {
		return "- none"
	}

	lines := make([]string, 0, len(criteria))
	for i, criterion := range criteria {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, criterion))
	}
	return strings.Join(lines, "\n")
}
