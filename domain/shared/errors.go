/*
Package shared holds the contracts every bounded context depends on:
aggregate roots, domain events, the unit of work, and structured domain
errors.

Error design:
 1. Sentinel errors support errors.Is() classification without string
    matching.
 2. DomainError captures the call stack at creation time and formats it
    lazily, so the log shows where the error happened, not where it was
    handled.
 3. Domain errors carry no transport concepts; HTTP status mapping lives in
    the api layer.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks concurrent modification or unique-constraint clashes.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput marks failed input validation.
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError is a structured error carrying business context and the stack
// of its creation point. It supports errors.Is() through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, used by errors.Is().
	Err error

	// Entity names the aggregate or concept the error belongs to.
	Entity string

	// Message is the human-readable description.
	Message string

	// Field optionally names the offending field for validation errors.
	Field string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames on demand, typically when logging.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack captures the current call stack. skip is the number of frames
// to drop, usually 3: runtime.Callers, CaptureStack, and the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals and
// keeping at most 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error for the given entity.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict domain error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation domain error.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can report their creation stack.
// The api layer uses it to log the origin of a failure.
type Stacker interface {
	Stack() []string
}
