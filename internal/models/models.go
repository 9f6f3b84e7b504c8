package models

import (
	"strings"
	"time"
)

// HomeProjectID is the id of the default project, which always exists
const HomeProjectID int64 = 0

// HomeProjectName is the name given to the default project on first run
const HomeProjectName = "Home"

// Priority orders tasks from None (lowest) to High
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// ParsePriority maps user input to a Priority. Unknown values map to None.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow
	case "medium", "m":
		return PriorityMedium
	case "high", "h":
		return PriorityHigh
	default:
		return PriorityNone
	}
}

// PriorityFromInt converts a stored integer back into a Priority
func PriorityFromInt(n int) Priority {
	p := Priority(n)
	if p < PriorityNone || p > PriorityHigh {
		return PriorityNone
	}
	return p
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "None"
	}
}

// Project groups tasks. ParentID nests projects under one another.
type Project struct {
	ID       int64
	Name     string
	ParentID int64
	Tasks    []Task
}

// Task represents a single task
type Task struct {
	ID          int64
	ProjectID   int64
	Name        string
	Description string
	Priority    Priority
	CreatedAt   time.Time
	DueTime     *time.Time // calendar date, time of day is ignored
	CompletedAt *time.Time
}

// Completed reports whether the task has been marked complete
func (t Task) Completed() bool {
	return t.CompletedAt != nil
}

// TaskFields are the user-supplied parts of a task
type TaskFields struct {
	Name        string
	Description *string
	Priority    *Priority
	Due         *time.Time
}

// NewTask builds a fresh task from user-supplied fields. Every field not
// given falls back to its default, so rebuilding an existing task this way
// replaces it entirely.
func NewTask(id, projectID int64, f TaskFields, now time.Time) Task {
	t := Task{
		ID:        id,
		ProjectID: projectID,
		Name:      f.Name,
		CreatedAt: now,
	}
	if f.Description != nil {
		t.Description = *f.Description
	}
	if f.Priority != nil {
		t.Priority = *f.Priority
	}
	if f.Due != nil {
		due := *f.Due
		t.DueTime = &due
	}
	return t
}

// FindTask returns a pointer into p.Tasks for the task with the given id
func (p *Project) FindTask(id int64) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// RemoveTask deletes the first task with the given id and reports whether one was removed
func (p *Project) RemoveTask(id int64) bool {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
