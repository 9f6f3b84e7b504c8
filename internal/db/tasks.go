package db

import (
	"database/sql"
	"time"

	"github.com/tgienger/todo/internal/models"
)

const dueLayout = "2006-01-02"

// listTasks returns all tasks for a project ordered by id
func (db *DB) listTasks(projectID int64) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, description, priority, created_at, due_time, completed_at
		FROM tasks
		WHERE project_id = ?
		ORDER BY id
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func scanTask(rows *sql.Rows) (models.Task, error) {
	var (
		t           models.Task
		priority    int
		createdAt   string
		dueTime     sql.NullString
		completedAt sql.NullString
	)
	err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Description, &priority, &createdAt, &dueTime, &completedAt)
	if err != nil {
		return t, err
	}

	t.Priority = models.PriorityFromInt(priority)
	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return t, err
	}
	if dueTime.Valid {
		due, err := time.ParseInLocation(dueLayout, dueTime.String, time.UTC)
		if err != nil {
			return t, err
		}
		t.DueTime = &due
	}
	if completedAt.Valid {
		done, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return t, err
		}
		t.CompletedAt = &done
	}
	return t, nil
}

func insertTask(tx *sql.Tx, t models.Task) error {
	var dueTime, completedAt sql.NullString
	if t.DueTime != nil {
		dueTime = sql.NullString{String: t.DueTime.Format(dueLayout), Valid: true}
	}
	if t.CompletedAt != nil {
		completedAt = sql.NullString{String: formatTime(*t.CompletedAt), Valid: true}
	}

	_, err := tx.Exec(`
		INSERT INTO tasks (id, project_id, name, description, priority, created_at, due_time, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ProjectID, t.Name, t.Description, int(t.Priority), formatTime(t.CreatedAt), dueTime, completedAt)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
