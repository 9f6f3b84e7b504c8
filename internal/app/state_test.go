package app

import (
	"bytes"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/tgienger/todo/internal/command"
	"github.com/tgienger/todo/internal/logging"
	"github.com/tgienger/todo/internal/models"
)

// memStore keeps the persisted state in memory and counts saves
type memStore struct {
	projects      []models.Project
	nextTaskID    int64
	nextProjectID *int64
	saves         int
	failSaves     bool
	failLoad      bool
}

func (m *memStore) LoadProjects() ([]models.Project, error) {
	if m.failLoad {
		return nil, errors.New("disk on fire")
	}
	return cloneProjects(m.projects), nil
}

func (m *memStore) SaveProjects(projects []models.Project) error {
	if m.failSaves {
		return errors.New("read-only file system")
	}
	m.saves++
	m.projects = cloneProjects(projects)
	return nil
}

func (m *memStore) LoadNextTaskID() (int64, error) { return m.nextTaskID, nil }

func (m *memStore) SaveNextTaskID(id int64) error {
	if m.failSaves {
		return errors.New("read-only file system")
	}
	m.nextTaskID = id
	return nil
}

func (m *memStore) LoadNextProjectID() (int64, bool, error) {
	if m.nextProjectID == nil {
		return 0, false, nil
	}
	return *m.nextProjectID, true, nil
}

func (m *memStore) SaveNextProjectID(id int64) error {
	if m.failSaves {
		return errors.New("read-only file system")
	}
	m.nextProjectID = &id
	return nil
}

func cloneProjects(in []models.Project) []models.Project {
	out := make([]models.Project, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Tasks = append([]models.Task(nil), p.Tasks...)
	}
	return out
}

// answers is a Confirmer that replies from a script and records the questions
type answers struct {
	replies   []bool
	err       error
	questions []string
}

func (a *answers) Confirm(question string) (bool, error) {
	a.questions = append(a.questions, question)
	if a.err != nil {
		return false, a.err
	}
	if len(a.replies) == 0 {
		return false, nil
	}
	r := a.replies[0]
	a.replies = a.replies[1:]
	return r, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	state   *State
	store   *memStore
	confirm *answers
	clock   *clock
	out     *bytes.Buffer
}

func newFixture(t *testing.T, store *memStore) *fixture {
	t.Helper()
	if store == nil {
		store = &memStore{}
	}
	f := &fixture{
		store:   store,
		confirm: &answers{},
		clock:   &clock{t: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)},
		out:     &bytes.Buffer{},
	}
	state, err := Load(store, Options{
		Confirmer: f.confirm,
		Out:       f.out,
		Logger:    logging.Discard(),
		Now:       f.clock.now,
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f.state = state
	return f
}

// run parses argv as the command line after the program name and dispatches it
func (f *fixture) run(args ...string) error {
	cmd, err := command.Parse(append([]string{"todo"}, args...))
	if err != nil {
		return err
	}
	f.out.Reset()
	return f.state.Dispatch(cmd)
}

func TestLoad_BootstrapsHome(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)

	projects := f.state.Projects()
	is.Equal(len(projects), 1)
	is.Equal(projects[0].ID, int64(0))
	is.Equal(projects[0].Name, "Home")
	is.Equal(f.store.saves, 1) // persisted right away
	is.Equal(len(f.store.projects), 1)
}

func TestLoad_RestoresCounters(t *testing.T) {
	is := is.New(t)
	store := &memStore{
		projects: []models.Project{
			{ID: 0, Name: "Home", Tasks: []models.Task{{ID: 2, Name: "a"}}},
			{ID: 4, Name: "Work"},
		},
		nextTaskID: 9,
	}
	f := newFixture(t, store)
	is.Equal(f.store.saves, 0)
	is.Equal(f.state.NextTaskID(), int64(9))

	is.NoErr(f.run("project", "Garden"))
	is.Equal(f.state.projectByName("Garden").ID, int64(5)) // seeded from max + 1
}

func TestLoad_CounterBehindTasksIsAdvanced(t *testing.T) {
	is := is.New(t)
	store := &memStore{
		projects:   []models.Project{{ID: 0, Name: "Home", Tasks: []models.Task{{ID: 6, Name: "a"}}}},
		nextTaskID: 3,
	}
	f := newFixture(t, store)
	is.Equal(f.state.NextTaskID(), int64(7))
}

func TestLoad_Failure(t *testing.T) {
	is := is.New(t)
	_, err := Load(&memStore{failLoad: true}, Options{})
	is.True(err != nil)
	is.Equal(KindOf(err), KindIOFailure)
}

func TestScenario(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)

	is.NoErr(f.run("add", "Buy milk"))
	home := f.state.projectByID(0)
	is.Equal(len(home.Tasks), 1)
	is.Equal(home.Tasks[0].ID, int64(0))
	is.Equal(home.Tasks[0].Name, "Buy milk")

	f.confirm.replies = []bool{true}
	is.NoErr(f.run("add", "Write report", "-p", "Work"))
	is.Equal(f.confirm.questions, []string{"Project 'Work' does not exist. Create it?"})
	work := f.state.projectByName("Work")
	is.Equal(work.ID, int64(1))
	is.Equal(len(work.Tasks), 1)
	is.Equal(work.Tasks[0].ID, int64(1))
	is.Equal(work.Tasks[0].ProjectID, int64(1))

	is.NoErr(f.run("list"))
	is.Equal(f.out.String(), "Home\n"+
		"  - [ ] 0 Buy milk\n"+
		"  Work\n"+
		"    - [ ] 1 Write report\n")

	f.clock.advance(time.Hour)
	is.NoErr(f.run("complete", "0"))
	_, milk := f.state.findTask(0)
	is.True(milk.CompletedAt.Equal(f.clock.t))
	_, report := f.state.findTask(1)
	is.True(report.CompletedAt == nil)

	err := f.run("remove-project", "Work")
	is.Equal(err, ErrProjectHasTasks)
	is.True(f.state.projectByName("Work") != nil)

	is.NoErr(f.run("remove-project", "Work", "-f"))
	is.True(f.state.projectByName("Work") == nil)

	is.NoErr(f.run("ls"))
	is.Equal(f.out.String(), "Home\n  - [x] 0 Buy milk\n")

	// everything made it to the store
	is.Equal(len(f.store.projects), 1)
	is.Equal(f.store.nextTaskID, int64(2))
}

func TestAdd(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.NoErr(f.run("add", "Buy milk"))

		task := f.state.projectByID(0).Tasks[0]
		is.Equal(task.Description, "")
		is.Equal(task.Priority, models.PriorityNone)
		is.Equal(task.CreatedAt, f.clock.t)
		is.True(task.DueTime == nil)
		is.True(task.CompletedAt == nil)
		is.Equal(f.out.String(), "Task 0 added to project 'Home'\n")
	})

	t.Run("all fields", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.NoErr(f.run("add", "Write report", "-d", "for Q3", "--priority", "m", "--due", "2026-11-01"))

		task := f.state.projectByID(0).Tasks[0]
		is.Equal(task.Description, "for Q3")
		is.Equal(task.Priority, models.PriorityMedium)
		is.Equal(task.DueTime.Format("2006-01-02"), "2026-11-01")
	})

	t.Run("existing project needs no prompt", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.NoErr(f.run("project", "Work"))
		is.NoErr(f.run("add", "x", "-p", "Work"))
		is.Equal(len(f.confirm.questions), 0)
		is.Equal(len(f.state.projectByName("Work").Tasks), 1)
	})

	t.Run("declined project", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		saves := f.store.saves

		err := f.run("add", "x", "-p", "Work")
		is.Equal(err, ErrProjectNotCreated)
		is.True(f.state.projectByName("Work") == nil)
		is.Equal(f.state.NextTaskID(), int64(0))
		is.Equal(f.store.saves, saves)
	})

	t.Run("prompt failure", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		f.confirm.err = errors.New("stdin closed")

		err := f.run("add", "x", "-p", "Work")
		is.Equal(KindOf(err), KindIOFailure)
		is.True(errors.Is(err, f.confirm.err))
	})

	t.Run("missing name", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		f.confirm.replies = []bool{true}

		is.Equal(f.run("add", "-p", "Work"), ErrMissingTaskName)
		is.Equal(len(f.confirm.questions), 0) // nothing is created for a task that cannot exist
		is.Equal(f.state.NextTaskID(), int64(0))
	})
}

func TestTaskIDsNeverReused(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)

	var last int64 = -1
	for i, name := range []string{"a", "b", "c", "d"} {
		is.NoErr(f.run("add", name))
		tasks := f.state.projectByID(0).Tasks
		id := tasks[len(tasks)-1].ID
		is.True(id > last)
		last = id

		if i%2 == 1 {
			is.NoErr(f.run("rm", strconv.FormatInt(id, 10)))
		}
	}

	// a fresh process continues from the persisted counter
	g := newFixture(t, f.store)
	is.NoErr(g.run("add", "e"))
	tasks := g.state.projectByID(0).Tasks
	is.Equal(tasks[len(tasks)-1].ID, last+1)
}

func TestRemove(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)
	is.NoErr(f.run("add", "Buy milk"))

	is.Equal(f.run("remove"), ErrTaskIDRequired)
	is.Equal(f.run("remove", "5"), ErrTaskNotFound)

	is.NoErr(f.run("remove", "0"))
	is.Equal(f.out.String(), "Task 0 removed\n")
	is.Equal(len(f.state.projectByID(0).Tasks), 0)

	is.Equal(f.run("show", "0"), ErrTaskNotFound)
}

func TestModify(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)
	f.confirm.replies = []bool{true}
	is.NoErr(f.run("add", "Draft", "-p", "Work", "--priority", "high", "-d", "old", "--due", "2026-12-01"))
	is.NoErr(f.run("done", "0"))

	is.Equal(f.run("modify"), ErrTaskIDRequired)
	is.Equal(f.run("modify", "9", "x"), ErrTaskNotFound)
	is.Equal(f.run("modify", "0"), ErrInvalidCommandFields)

	f.clock.advance(24 * time.Hour)
	is.NoErr(f.run("mod", "0", "Final", "-d", "new"))

	_, task := f.state.findTask(0)
	is.Equal(task.ID, int64(0))
	is.Equal(task.ProjectID, int64(1))
	is.Equal(task.Name, "Final")
	is.Equal(task.Description, "new")
	is.Equal(task.Priority, models.PriorityNone) // full replacement
	is.Equal(task.CreatedAt, f.clock.t)
	is.True(task.DueTime == nil)
	is.True(task.CompletedAt == nil)
	is.Equal(f.state.NextTaskID(), int64(1))
}

func TestCreateProject(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)

	is.NoErr(f.run("project", "Work"))
	is.Equal(f.out.String(), "Project 'Work' created\n")
	is.NoErr(f.run("project", "-p", "Garden"))

	is.Equal(f.run("project", "Work"), ErrProjectExists)
	is.Equal(f.run("project", "Home"), ErrProjectExists)
	is.Equal(f.run("project"), ErrProjectNameRequired)
	is.Equal(f.run("project", "-p", " "), ErrProjectNameRequired)

	is.Equal(f.state.projectByName("Work").ID, int64(1))
	is.Equal(f.state.projectByName("Garden").ID, int64(2))
}

func TestProjectIDsNeverReused(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)

	is.NoErr(f.run("project", "A"))
	is.NoErr(f.run("project", "B"))
	is.NoErr(f.run("rmp", "B"))

	g := newFixture(t, f.store)
	is.NoErr(g.run("project", "C"))
	is.Equal(g.state.projectByName("C").ID, int64(3))
}

func TestRemoveProject(t *testing.T) {
	t.Run("home is never removable", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.Equal(f.run("remove-project", "Home"), ErrCannotRemoveHome)
		is.Equal(f.run("remove-project", "Home", "--force"), ErrCannotRemoveHome)
		is.NoErr(f.run("add", "x"))
		is.Equal(f.run("rmp", "-p", "Home", "-f"), ErrCannotRemoveHome)
		is.True(f.state.projectByID(0) != nil)
	})

	t.Run("errors", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.Equal(f.run("rmp"), ErrProjectNameRequired)
		is.Equal(f.run("rmp", "Nope"), ErrProjectNotFound)
	})

	t.Run("empty project needs no force", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.NoErr(f.run("project", "Work"))
		is.NoErr(f.run("rmp", "Work"))
		is.Equal(f.out.String(), "Project 'Work' removed\n")
		is.Equal(len(f.store.projects), 1)
	})
}

func TestShow(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)
	is.NoErr(f.run("add", "Buy milk", "--priority", "low"))

	is.Equal(f.run("show"), ErrTaskIDRequired)
	is.Equal(f.run("show", "3"), ErrTaskNotFound)

	saves := f.store.saves
	is.NoErr(f.run("show", "0"))
	is.Equal(f.store.saves, saves) // read only
	is.Equal(f.out.String(), "Task ID: 0\n"+
		"Name: Buy milk\n"+
		"Project: Home\n"+
		"Description: \n"+
		"Priority: Low\n"+
		"Created: "+f.clock.t.Local().Format("2006-01-02 15:04:05")+"\n")
}

func TestComplete(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)
	is.NoErr(f.run("add", "Buy milk"))

	is.Equal(f.run("complete"), ErrTaskIDRequired)
	is.Equal(f.run("complete", "1"), ErrTaskNotFound)

	is.NoErr(f.run("complete", "0"))
	first := f.clock.t
	is.Equal(f.out.String(), "Task 0 marked as complete\n")

	f.clock.advance(time.Minute)
	is.NoErr(f.run("complete", "0"))
	_, task := f.state.findTask(0)
	is.True(task.CompletedAt.After(first)) // re-completion overwrites
	is.True(f.store.projects[0].Tasks[0].CompletedAt.Equal(f.clock.t))
}

func TestList(t *testing.T) {
	t.Run("nested and cyclic projects", func(t *testing.T) {
		is := is.New(t)
		store := &memStore{projects: []models.Project{
			{ID: 0, Name: "Home"},
			{ID: 1, Name: "Work", ParentID: 0, Tasks: []models.Task{{ID: 0, Name: "report"}}},
			{ID: 2, Name: "Team", ParentID: 1},
			{ID: 3, Name: "Garden", ParentID: 0},
			// 4 and 5 point at each other and are unreachable from Home
			{ID: 4, Name: "Loop A", ParentID: 5},
			{ID: 5, Name: "Loop B", ParentID: 4},
		}}
		f := newFixture(t, store)

		is.NoErr(f.run("list"))
		is.Equal(f.out.String(), "Home\n"+
			"  Work\n"+
			"    - [ ] 0 report\n"+
			"    Team\n"+
			"  Garden\n")

		is.NoErr(f.run("list", "-p", "Loop A"))
		is.Equal(f.out.String(), "Loop A\n  Loop B\n")
	})

	t.Run("unknown project", func(t *testing.T) {
		is := is.New(t)
		f := newFixture(t, nil)
		is.Equal(f.run("list", "-p", "Nope"), ErrProjectNotFound)
	})
}

func TestSaveFailureIsLogged(t *testing.T) {
	is := is.New(t)
	store := &memStore{}
	var logs bytes.Buffer
	state, err := Load(store, Options{Logger: logging.New(&logs, "error", "logfmt")})
	is.NoErr(err)

	store.failSaves = true
	cmd, _ := command.Parse([]string{"todo", "add", "x"})
	is.NoErr(state.Dispatch(cmd)) // the command itself succeeds
	is.True(bytes.Contains(logs.Bytes(), []byte("failed to save projects")))
}

func TestDispatch_Unknown(t *testing.T) {
	is := is.New(t)
	f := newFixture(t, nil)
	err := f.run("frobnicate")
	is.True(errors.Is(err, ErrUnknownCommand))
	is.Equal(KindOf(err), KindUnknownCommand)
	is.Equal(err.Error(), "unknown command: frobnicate")
}
