package llm

import (
	"context"
)

// Generator turns a prompt into free-form narrative text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (text string, err error)
}

// GenerationError reports a failed or unusable text-generation call.
type GenerationError struct {
	Model string
	Err   error
}

// Error implements error.
func (e *GenerationError) Error() (msg string) {
	msg = "roadmap generation failed"
	if e.Model != "" {
		msg += " (model " + e.Model + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *GenerationError) Unwrap() (err error) {
	err = e.Err
	return err
}
