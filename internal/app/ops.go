package app

import (
	"fmt"
	"strings"

	"github.com/tgienger/todo/internal/command"
	"github.com/tgienger/todo/internal/models"
)

// Dispatch runs the operation named by cmd.Op
func (s *State) Dispatch(cmd command.Command) error {
	switch cmd.Op {
	case "add":
		return s.Add(cmd)
	case "list", "ls":
		return s.List(cmd)
	case "remove", "rm":
		return s.Remove(cmd)
	case "modify", "mod":
		return s.Modify(cmd)
	case "show":
		return s.Show(cmd)
	case "complete", "done":
		return s.Complete(cmd)
	case "project":
		return s.CreateProject(cmd)
	case "remove-project", "rmp":
		return s.RemoveProject(cmd)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Op)
	}
}

// Add creates a task in the project given by --project, or in Home.
// A project that does not exist yet is created after confirmation.
func (s *State) Add(cmd command.Command) error {
	fields, ok := cmd.TaskFields()
	if !ok {
		return ErrMissingTaskName
	}

	projectID := models.HomeProjectID
	if cmd.Params.Project != nil {
		id, err := s.resolveProject(*cmd.Params.Project)
		if err != nil {
			return err
		}
		projectID = id
	}

	project := s.projectByID(projectID)
	if project == nil {
		return ErrProjectNotFound
	}

	task := models.NewTask(s.newTaskID(), projectID, fields, s.now())
	project.Tasks = append(project.Tasks, task)
	s.save()

	s.logger.Debug("added task", "id", task.ID, "project", project.Name)
	s.out.Success("Task %d added to project '%s'", task.ID, project.Name)
	return nil
}

// resolveProject returns the id of the named project, asking to create it if needed
func (s *State) resolveProject(name string) (int64, error) {
	if p := s.projectByName(name); p != nil {
		return p.ID, nil
	}
	if s.confirm == nil {
		return 0, ErrProjectNotCreated
	}

	ok, err := s.confirm.Confirm(fmt.Sprintf("Project '%s' does not exist. Create it?", name))
	if err != nil {
		return 0, ioFailure("io error while prompting", err)
	}
	if !ok {
		return 0, ErrProjectNotCreated
	}
	return s.createProject(name), nil
}

func (s *State) createProject(name string) int64 {
	p := models.Project{
		ID:       s.newProjectID(),
		Name:     name,
		ParentID: models.HomeProjectID,
	}
	s.projects = append(s.projects, p)
	s.logger.Debug("created project", "id", p.ID, "name", name)
	return p.ID
}

// List prints the project tree rooted at Home, or at the project given by --project
func (s *State) List(cmd command.Command) error {
	root := s.projectByID(models.HomeProjectID)
	if cmd.Params.Project != nil {
		root = s.projectByName(*cmd.Params.Project)
	}
	if root == nil {
		return ErrProjectNotFound
	}

	type frame struct {
		id    int64
		depth int
	}
	stack := []frame{{id: root.ID}}
	visited := make(map[int64]bool)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.id] {
			continue
		}
		visited[f.id] = true

		p := s.projectByID(f.id)
		s.out.Project(f.depth, *p)
		for _, t := range p.Tasks {
			s.out.Task(f.depth, t)
		}

		// push in reverse so children print in storage order
		children := s.children(p.ID)
		for i := len(children) - 1; i >= 0; i-- {
			if !visited[children[i]] {
				stack = append(stack, frame{id: children[i], depth: f.depth + 1})
			}
		}
	}
	return nil
}

// children returns the ids of projects nested directly under parentID
func (s *State) children(parentID int64) []int64 {
	var ids []int64
	for _, p := range s.projects {
		if p.ParentID == parentID && p.ID != parentID {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Remove deletes a task by id
func (s *State) Remove(cmd command.Command) error {
	if cmd.Params.TaskID == nil {
		return ErrTaskIDRequired
	}
	id := *cmd.Params.TaskID

	found := false
	for i := range s.projects {
		if s.projects[i].RemoveTask(id) {
			found = true
			break
		}
	}
	if !found {
		return ErrTaskNotFound
	}

	s.save()
	s.out.Success("Task %d removed", id)
	return nil
}

// Modify rebuilds a task from the command, keeping its id and project.
// Fields not given on the command line are reset, not kept.
func (s *State) Modify(cmd command.Command) error {
	if cmd.Params.TaskID == nil {
		return ErrTaskIDRequired
	}
	id := *cmd.Params.TaskID

	_, task := s.findTask(id)
	if task == nil {
		return ErrTaskNotFound
	}
	fields, ok := cmd.TaskFields()
	if !ok {
		return ErrInvalidCommandFields
	}

	*task = models.NewTask(id, task.ProjectID, fields, s.now())
	s.save()
	s.out.Success("Task %d modified", id)
	return nil
}

// CreateProject adds an empty project under Home
func (s *State) CreateProject(cmd command.Command) error {
	name, ok := cmd.ProjectName()
	if ok && s.projectByName(name) != nil {
		return ErrProjectExists
	}
	if !ok || strings.TrimSpace(name) == "" {
		return ErrProjectNameRequired
	}

	s.createProject(name)
	s.save()
	s.out.Success("Project '%s' created", name)
	return nil
}

// RemoveProject deletes a project. Projects with tasks need --force and
// lose their tasks with them. Home can never be removed.
func (s *State) RemoveProject(cmd command.Command) error {
	name, ok := cmd.ProjectName()
	if !ok {
		return ErrProjectNameRequired
	}

	p := s.projectByName(name)
	if p == nil {
		return ErrProjectNotFound
	}
	if p.ID == models.HomeProjectID {
		return ErrCannotRemoveHome
	}
	if len(p.Tasks) > 0 && !cmd.Params.Force {
		return ErrProjectHasTasks
	}

	id := p.ID
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			break
		}
	}

	s.save()
	s.out.Success("Project '%s' removed", name)
	return nil
}

// Show prints every field of a task
func (s *State) Show(cmd command.Command) error {
	if cmd.Params.TaskID == nil {
		return ErrTaskIDRequired
	}

	project, task := s.findTask(*cmd.Params.TaskID)
	if task == nil {
		return ErrTaskNotFound
	}
	s.out.TaskDetail(*task, project.Name)
	return nil
}

// Complete stamps a task as completed now. Completing again moves the stamp.
func (s *State) Complete(cmd command.Command) error {
	if cmd.Params.TaskID == nil {
		return ErrTaskIDRequired
	}
	id := *cmd.Params.TaskID

	_, task := s.findTask(id)
	if task == nil {
		return ErrTaskNotFound
	}

	now := s.now()
	task.CompletedAt = &now
	s.save()
	s.out.Success("Task %d marked as complete", id)
	return nil
}
