package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dori/taskflow/internal/model"
)

const taskColumns = `id, title, description, due_date, priority, status`

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t         model.Task
		desc, due sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Title, &desc, &due, &t.Priority, &t.Status); err != nil {
		return model.Task{}, err
	}
	t.Description = desc.String
	t.DueDate = due.String
	return t, nil
}

// checkTaskInput normalizes the title and fills server-side defaults
func checkTaskInput(in model.TaskInput) (model.TaskInput, error) {
	title, err := model.NormalizeTitle(in.Title)
	if err != nil {
		return in, err
	}
	in.Title = title
	in.Description = strings.TrimSpace(in.Description)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if !in.Priority.Valid() {
		return in, fmt.Errorf("%w: priority %q", ErrInvalid, in.Priority)
	}
	if in.Status != "" && !in.Status.Valid() {
		return in, fmt.Errorf("%w: status %q", ErrInvalid, in.Status)
	}
	return in, nil
}

// listExists reports ErrNotFound for unknown list ids
func (db *DB) listExists(ctx context.Context, listID string) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM task_lists WHERE id = ?`, listID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ListTasks returns a list's tasks, oldest first
func (db *DB) ListTasks(ctx context.Context, listID string) ([]model.Task, error) {
	if err := db.listExists(ctx, listID); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_list_id = ? ORDER BY created, rowid`, listID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask adds a task to a list. New tasks are always OPEN.
func (db *DB) CreateTask(ctx context.Context, listID string, in model.TaskInput) (model.Task, error) {
	in, err := checkTaskInput(in)
	if err != nil {
		return model.Task{}, err
	}
	if err := db.listExists(ctx, listID); err != nil {
		return model.Task{}, err
	}

	t := model.Task{
		ID:          db.newID(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      model.StatusOpen,
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO tasks (id, task_list_id, title, description, due_date, priority, status, created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, listID, t.Title, nullable(t.Description), nullable(t.DueDate), t.Priority, t.Status, db.timestamp())
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// GetTask returns one task of a list or ErrNotFound
func (db *DB) GetTask(ctx context.Context, listID, taskID string) (model.Task, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND task_list_id = ?`, taskID, listID)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateTask replaces every editable field. An empty status keeps the stored one.
func (db *DB) UpdateTask(ctx context.Context, listID, taskID string, in model.TaskInput) (model.Task, error) {
	in, err := checkTaskInput(in)
	if err != nil {
		return model.Task{}, err
	}

	var updated model.Task
	err = db.Transaction(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND task_list_id = ?`, taskID, listID)
		current, err := scanTask(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}

		status := in.Status
		if status == "" {
			status = current.Status
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, status = ?
			WHERE id = ? AND task_list_id = ?
		`, in.Title, nullable(in.Description), nullable(in.DueDate), in.Priority, status, taskID, listID)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}

		updated = model.Task{
			ID:          taskID,
			Title:       in.Title,
			Description: in.Description,
			DueDate:     in.DueDate,
			Priority:    in.Priority,
			Status:      status,
		}
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes one task of a list
func (db *DB) DeleteTask(ctx context.Context, listID, taskID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND task_list_id = ?`, taskID, listID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return mustAffect(res)
}
