// Package app holds the in-memory projects and applies one command to them.
//
// A State is loaded once from a Store, mutated by exactly one operation and
// written back in full after every successful mutation.
package app

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/prompt"
	"github.com/tgienger/todo/internal/ui/render"
)

// Store persists the whole project collection and the id counters
type Store interface {
	LoadProjects() ([]models.Project, error)
	SaveProjects(projects []models.Project) error
	LoadNextTaskID() (int64, error)
	SaveNextTaskID(id int64) error
	LoadNextProjectID() (id int64, ok bool, err error)
	SaveNextProjectID(id int64) error
}

// Options configures a State. Zero values get working defaults.
type Options struct {
	Confirmer prompt.Confirmer
	Out       io.Writer
	Logger    *log.Logger
	Now       func() time.Time
}

// State is the application state for one invocation
type State struct {
	projects      []models.Project
	nextTaskID    int64
	nextProjectID int64

	store   Store
	confirm prompt.Confirmer
	out     *render.Printer
	logger  *log.Logger
	now     func() time.Time
}

// Load reads the persisted state, creating the Home project on first run
func Load(store Store, opts Options) (*State, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &State{
		store:   store,
		confirm: opts.Confirmer,
		out:     render.New(opts.Out),
		logger:  opts.Logger,
		now:     opts.Now,
	}

	projects, err := store.LoadProjects()
	if err != nil {
		return nil, ioFailure("failed to load projects", err)
	}
	s.projects = projects

	if s.nextTaskID, err = store.LoadNextTaskID(); err != nil {
		return nil, ioFailure("failed to load next task id", err)
	}
	nextProjectID, ok, err := store.LoadNextProjectID()
	if err != nil {
		return nil, ioFailure("failed to load next project id", err)
	}

	bootstrapped := s.ensureHome()

	// Counters never go below what is already in use
	var maxProject, maxTask int64 = -1, -1
	for _, p := range s.projects {
		maxProject = max(maxProject, p.ID)
		for _, t := range p.Tasks {
			maxTask = max(maxTask, t.ID)
		}
	}
	if !ok || nextProjectID <= maxProject {
		nextProjectID = maxProject + 1
	}
	s.nextProjectID = nextProjectID
	if s.nextTaskID <= maxTask {
		s.logger.Warn("next task id behind stored tasks, advancing", "stored", s.nextTaskID, "next", maxTask+1)
		s.nextTaskID = maxTask + 1
	}

	s.logger.Debug("loaded state", "projects", len(s.projects), "next_task_id", s.nextTaskID, "next_project_id", s.nextProjectID)

	if bootstrapped {
		s.save()
	}
	return s, nil
}

// ensureHome adds the Home project if it is missing and reports whether it did
func (s *State) ensureHome() bool {
	if s.projectByID(models.HomeProjectID) != nil {
		return false
	}
	home := models.Project{ID: models.HomeProjectID, Name: models.HomeProjectName, ParentID: models.HomeProjectID}
	s.projects = append([]models.Project{home}, s.projects...)
	s.logger.Debug("created Home project")
	return true
}

// save writes everything back. Failures are logged, not returned: the
// in-memory mutation has already happened.
func (s *State) save() {
	if err := s.store.SaveProjects(s.projects); err != nil {
		s.logger.Error("failed to save projects", "err", err)
	}
	if err := s.store.SaveNextTaskID(s.nextTaskID); err != nil {
		s.logger.Error("failed to save next task id", "err", err)
	}
	if err := s.store.SaveNextProjectID(s.nextProjectID); err != nil {
		s.logger.Error("failed to save next project id", "err", err)
	}
}

func (s *State) newTaskID() int64 {
	id := s.nextTaskID
	s.nextTaskID++
	return id
}

func (s *State) newProjectID() int64 {
	id := s.nextProjectID
	s.nextProjectID++
	return id
}

// Projects returns the current projects in storage order
func (s *State) Projects() []models.Project {
	return s.projects
}

// NextTaskID returns the id the next added task will get
func (s *State) NextTaskID() int64 {
	return s.nextTaskID
}

func (s *State) projectByID(id int64) *models.Project {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i]
		}
	}
	return nil
}

func (s *State) projectByName(name string) *models.Project {
	for i := range s.projects {
		if s.projects[i].Name == name {
			return &s.projects[i]
		}
	}
	return nil
}

// findTask locates a task by id across all projects
func (s *State) findTask(id int64) (*models.Project, *models.Task) {
	for i := range s.projects {
		if t := s.projects[i].FindTask(id); t != nil {
			return &s.projects[i], t
		}
	}
	return nil, nil
}
