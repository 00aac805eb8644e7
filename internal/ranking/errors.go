package ranking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every InputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoCriteria is returned when a job description yields no criteria.
	ErrNoCriteria = errors.New("no criteria could be extracted from the job description")
)

// InputError reports empty or unusable caller input. It is returned before
// any agent call and is never retried.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// AgentError reports an agent call that still failed after all retries.
type AgentError struct {
	Task     string
	Attempts int
	Cause    error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent task %s failed after %d attempt(s): %v", e.Task, e.Attempts, e.Cause)
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}
