// Package command turns a raw argument vector into a typed Command.
//
// The grammar is deliberately loose: value flags consume the following token
// whatever it looks like, a value flag at the end of the arguments is dropped,
// and the first bare non-negative integer becomes the task id for every
// operation. Semantic validation is left to the caller.
package command

import (
	"errors"
	"strconv"
	"time"

	"github.com/tgienger/todo/internal/models"
)

// DueLayout is the accepted format for --due values
const DueLayout = "2006-01-02"

// ErrMissingOperation is returned when no operation keyword follows the program name
var ErrMissingOperation = errors.New("missing command")

// Parameters holds everything parsed after the operation keyword
type Parameters struct {
	Tasks       []string
	Project     *string
	Description *string
	Priority    *models.Priority
	Due         *time.Time
	TaskID      *int64
	Force       bool
}

// Command is a parsed invocation
type Command struct {
	Op     string
	Params Parameters
}

// TaskFields returns the task construction fields carried by the command.
// ok is false when no task name was given.
func (c Command) TaskFields() (f models.TaskFields, ok bool) {
	if len(c.Params.Tasks) == 0 {
		return models.TaskFields{}, false
	}
	return models.TaskFields{
		Name:        c.Params.Tasks[0],
		Description: c.Params.Description,
		Priority:    c.Params.Priority,
		Due:         c.Params.Due,
	}, true
}

// ProjectName resolves a project name from --project, falling back to the
// first free-form token.
func (c Command) ProjectName() (string, bool) {
	if c.Params.Project != nil {
		return *c.Params.Project, true
	}
	if len(c.Params.Tasks) > 0 {
		return c.Params.Tasks[0], true
	}
	return "", false
}

type flagKind int

const (
	flagNone flagKind = iota
	flagProject
	flagDescription
	flagPriority
	flagDue
	flagForce
)

func classify(token string) flagKind {
	switch token {
	case "-p", "--project":
		return flagProject
	case "-d", "--description":
		return flagDescription
	case "--priority":
		return flagPriority
	case "--due":
		return flagDue
	case "-f", "--force":
		return flagForce
	default:
		return flagNone
	}
}

// Parse parses args where args[0] is the program name and args[1] the operation
func Parse(args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, ErrMissingOperation
	}

	cmd := Command{Op: args[1]}
	p := &cmd.Params
	rest := args[2:]

	for i := 0; i < len(rest); i++ {
		token := rest[i]
		kind := classify(token)

		// value returns the next token, if any, and advances past it
		value := func() (string, bool) {
			if i+1 >= len(rest) {
				return "", false
			}
			i++
			return rest[i], true
		}

		switch kind {
		case flagProject:
			if v, ok := value(); ok {
				p.Project = &v
			}
		case flagDescription:
			if v, ok := value(); ok {
				p.Description = &v
			}
		case flagPriority:
			if v, ok := value(); ok {
				prio := models.ParsePriority(v)
				p.Priority = &prio
			}
		case flagDue:
			if v, ok := value(); ok {
				if due, err := time.ParseInLocation(DueLayout, v, time.UTC); err == nil {
					p.Due = &due
				}
			}
		case flagForce:
			p.Force = true
		case flagNone:
			if id, ok := parseID(token); ok && p.TaskID == nil {
				p.TaskID = &id
				continue
			}
			p.Tasks = append(p.Tasks, token)
		}
	}

	return cmd, nil
}

func parseID(token string) (int64, bool) {
	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
