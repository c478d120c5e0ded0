package pizzeria

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/zoobzio/clockz"
)

var (
	// ErrInvalidPizzaSpec is returned by Builder.BuildStrict when type or size is missing.
	ErrInvalidPizzaSpec = errors.New("invalid pizza spec")
	// ErrNoMediator is returned when a user acts before a mediator is set.
	ErrNoMediator = errors.New("no order mediator set")
	// ErrStepNotFound is returned by StepChain edits that name a missing step.
	ErrStepNotFound = errors.New("step not found")
	// ErrEmptyChain is returned by Shift and Pop on an empty StepChain.
	ErrEmptyChain = errors.New("step chain is empty")
)

// StepError describes a StepChain run that stopped before its last step:
// either the context was done before a step started, or a step panicked.
type StepError struct {
	Timestamp time.Time
	Err       error
	Ticket    Ticket
	Path      []Name // Chain name followed by the step that did not complete
	Duration  time.Duration
	Timeout   bool
	Canceled  bool
}

// Error implements the error interface.
func (e *StepError) Error() string {
	path := strings.Join(e.Path, " -> ")
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s timed out after %v: %v", path, e.Duration, e.Err)
	case e.Canceled:
		return fmt.Sprintf("%s canceled after %v: %v", path, e.Duration, e.Err)
	default:
		return fmt.Sprintf("%s failed after %v: %v", path, e.Duration, e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the run stopped on a deadline.
func (e *StepError) IsTimeout() bool {
	return e.Timeout || errors.Is(e.Err, context.DeadlineExceeded)
}

// IsCanceled reports whether the run stopped on cancellation.
func (e *StepError) IsCanceled() bool {
	return e.Canceled || errors.Is(e.Err, context.Canceled)
}

// panicError is the cause recorded when a step panics.
type panicError struct {
	stepName  Name
	sanitized string
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic in step %q: %s", e.stepName, e.sanitized)
}

var hexAddress = regexp.MustCompile(`0x[0-9a-fA-F]+`)

// sanitizePanicMessage keeps addresses, paths, and stack traces out of
// error messages.
func sanitizePanicMessage(r any) string {
	if r == nil {
		return "unknown panic (nil value)"
	}
	msg := fmt.Sprint(r)
	switch {
	case len(msg) > 200:
		return "panic occurred (message truncated for security)"
	case strings.Contains(msg, "goroutine ") || strings.Contains(msg, "runtime."):
		return "panic occurred (stack trace sanitized)"
	case strings.Contains(msg, ".go:"):
		return "panic occurred (file path sanitized)"
	}
	return "panic occurred: " + hexAddress.ReplaceAllString(msg, "0x***")
}

// recoverFromPanic turns a panic in the deferring step into a *StepError.
// It must be called directly by defer.
func recoverFromPanic(result *Ticket, err *error, path []Name, input Ticket, clock clockz.Clock, start time.Time) {
	r := recover()
	if r == nil {
		return
	}
	*result = input
	*err = &StepError{
		Err: &panicError{
			stepName:  path[len(path)-1],
			sanitized: sanitizePanicMessage(r),
		},
		Ticket:    input,
		Path:      path,
		Duration:  clock.Since(start),
		Timestamp: clock.Now(),
	}
}
