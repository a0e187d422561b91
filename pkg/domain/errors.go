package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned when an operation cannot resolve a usable entity id:
// the identity field is missing or empty, or updateActive runs with no active entity.
var ErrInvalidID = errors.New("invalid id for update action: result of id lookup wasn't a valid id")

// ErrUnknownAction is returned when no handler is registered for an action type.
var ErrUnknownAction = errors.New("unknown action")

// ErrInvalidActionType is returned when an action type is not of the form "[path] op".
var ErrInvalidActionType = errors.New("invalid action type")

// ErrPathNotFound is returned when a path does not resolve in the state tree.
var ErrPathNotFound = errors.New("path not found")

// ErrPathConflict is returned when a module is registered at an occupied or overlapping path.
var ErrPathConflict = errors.New("path already registered")

// PayloadError reports an action payload whose shape does not match its operation.
type PayloadError struct {
	Op       string // Operation name
	Expected string // Human-readable expected shape
	Got      any    // The offending payload
	Cause    error  // Underlying decode failure, if any
}

func (e *PayloadError) Error() string {
	msg := fmt.Sprintf("%s: payload must be %s (got %T)", e.Op, e.Expected, e.Got)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *PayloadError) Unwrap() error {
	return e.Cause
}

// DispatchError wraps a handler failure with the action that triggered it.
type DispatchError struct {
	ActionType string
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch %s: %v", e.ActionType, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
