package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrDraftNotFound    = errors.New("no listing draft in progress")
	ErrUnknownStep      = errors.New("unknown wizard step")
	ErrStepLocked       = errors.New("complete the earlier steps first")
	ErrPatchMismatch    = errors.New("payload does not belong to this step")
	ErrStepsIncomplete  = errors.New("finish all steps before publishing")
	ErrOnlyHostsPublish = errors.New("only hosts can publish listings")
)

// ValidationError carries per-field messages for a rejected step.
type ValidationError struct {
	Step   int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d has %d invalid fields", e.Step, len(e.Fields))
}
