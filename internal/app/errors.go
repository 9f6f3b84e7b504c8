package app

import (
	"errors"
	"fmt"
)

// Kind classifies errors reported to the user
type Kind int

const (
	KindMissingArgument Kind = iota + 1
	KindNotFound
	KindAlreadyExists
	KindInvariantViolation
	KindIOFailure
	KindUnknownCommand
)

func (k Kind) String() string {
	switch k {
	case KindMissingArgument:
		return "missing argument"
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindInvariantViolation:
		return "invariant violation"
	case KindIOFailure:
		return "io failure"
	case KindUnknownCommand:
		return "unknown command"
	default:
		return "unknown"
	}
}

// Error is a user-facing failure with a short message
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrTaskIDRequired       = &Error{Kind: KindMissingArgument, Msg: "task ID required"}
	ErrProjectNameRequired  = &Error{Kind: KindMissingArgument, Msg: "project name required"}
	ErrMissingTaskName      = &Error{Kind: KindMissingArgument, Msg: "missing task name"}
	ErrInvalidCommandFields = &Error{Kind: KindMissingArgument, Msg: "invalid command fields"}

	ErrTaskNotFound    = &Error{Kind: KindNotFound, Msg: "task not found"}
	ErrProjectNotFound = &Error{Kind: KindNotFound, Msg: "project not found"}

	ErrProjectExists = &Error{Kind: KindAlreadyExists, Msg: "project already exists"}

	ErrCannotRemoveHome  = &Error{Kind: KindInvariantViolation, Msg: "cannot remove Home project"}
	ErrProjectHasTasks   = &Error{Kind: KindInvariantViolation, Msg: "project has tasks, use --force to remove anyway"}
	ErrProjectNotCreated = &Error{Kind: KindInvariantViolation, Msg: "project not created"}

	ErrUnknownCommand = &Error{Kind: KindUnknownCommand, Msg: "unknown command"}
)

func ioFailure(msg string, err error) *Error {
	return &Error{Kind: KindIOFailure, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
