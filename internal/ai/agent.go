package ai

import "context"

// Task names understood by agents.
const (
	TaskExtractCriteria = "extract_criteria"
	TaskExtractName     = "extract_name"
	TaskScoreResume     = "score_resume"
)

// Prompt context keys.
const (
	KeyTask           = "task"
	KeyJobDescription = "job_description"
	KeyResumeContent  = "resume_content"
	KeyCriteria       = "criteria"
	KeyFilename       = "filename"
)

// PromptContext is the structured input handed to an agent.
type PromptContext map[string]any

// Task returns the task name stored in the context, if any.
func (pc PromptContext) Task() string {
	task, _ := pc[KeyTask].(string)
	return task
}

// Agent submits a prompt context to a generative model and returns its raw
// text response. Implementations must be safe for concurrent use.
type Agent interface {
	Invoke(ctx context.Context, pc PromptContext) (string, error)
}

// AgentFunc adapts a plain function to the Agent interface.
type AgentFunc func(ctx context.Context, pc PromptContext) (string, error)

func (f AgentFunc) Invoke(ctx context.Context, pc PromptContext) (string, error) {
	return f(ctx, pc)
}
