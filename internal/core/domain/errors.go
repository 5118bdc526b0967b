package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCaseNotFound   = errors.New("case not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrPipelineFailed = errors.New("pipeline failed")
	ErrTemporary      = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// PipelineError reports a run the backend explicitly marked failed. The
// message is the backend-supplied error text verbatim, so the UI can show
// it unchanged.
type PipelineError struct {
	Message string
}

func (e *PipelineError) Error() string { return e.Message }

func (e *PipelineError) Unwrap() error { return ErrPipelineFailed }
