package db

import (
	"fmt"

	"github.com/tgienger/todo/internal/models"
)

// LoadProjects returns all projects ordered by id, each with its tasks
func (db *DB) LoadProjects() ([]models.Project, error) {
	rows, err := db.Query(`
		SELECT id, name, parent_id
		FROM projects ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.ParentID); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load tasks for each project
	for i := range projects {
		tasks, err := db.listTasks(projects[i].ID)
		if err != nil {
			return nil, fmt.Errorf("load tasks of project %d: %w", projects[i].ID, err)
		}
		projects[i].Tasks = tasks
	}

	return projects, nil
}

// SaveProjects replaces every stored project and task with the given ones
// in a single transaction
func (db *DB) SaveProjects(projects []models.Project) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM projects"); err != nil {
		return err
	}

	for _, p := range projects {
		_, err := tx.Exec(`
			INSERT INTO projects (id, name, parent_id) VALUES (?, ?, ?)
		`, p.ID, p.Name, p.ParentID)
		if err != nil {
			return fmt.Errorf("insert project %q: %w", p.Name, err)
		}

		for _, t := range p.Tasks {
			if err := insertTask(tx, t); err != nil {
				return fmt.Errorf("insert task %d: %w", t.ID, err)
			}
		}
	}

	return tx.Commit()
}
