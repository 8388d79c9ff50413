package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dori/taskflow/internal/model"
)

const taskListColumns = `id, title, description, created`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaskList(row rowScanner) (model.TaskList, error) {
	var (
		l    model.TaskList
		desc sql.NullString
	)
	if err := row.Scan(&l.ID, &l.Title, &desc, &l.Created); err != nil {
		return model.TaskList{}, err
	}
	l.Description = desc.String
	return l, nil
}

// ListTaskLists returns every list, oldest first
func (db *DB) ListTaskLists(ctx context.Context) ([]model.TaskList, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+taskListColumns+` FROM task_lists ORDER BY created, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query task lists: %w", err)
	}
	defer rows.Close()

	lists := []model.TaskList{}
	for rows.Next() {
		l, err := scanTaskList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CreateTaskList stores a new list. The title is trimmed and must not be empty.
func (db *DB) CreateTaskList(ctx context.Context, title, description string) (model.TaskList, error) {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return model.TaskList{}, err
	}
	l := model.TaskList{
		ID:          db.newID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Created:     db.timestamp(),
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO task_lists (id, title, description, created) VALUES (?, ?, ?, ?)`,
		l.ID, l.Title, nullable(l.Description), l.Created)
	if err != nil {
		return model.TaskList{}, fmt.Errorf("insert task list: %w", err)
	}
	return l, nil
}

// GetTaskList returns one list or ErrNotFound
func (db *DB) GetTaskList(ctx context.Context, id string) (model.TaskList, error) {
	row := db.QueryRowContext(ctx, `SELECT `+taskListColumns+` FROM task_lists WHERE id = ?`, id)
	l, err := scanTaskList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TaskList{}, ErrNotFound
	}
	if err != nil {
		return model.TaskList{}, fmt.Errorf("get task list: %w", err)
	}
	return l, nil
}

// UpdateTaskList replaces a list's title and description
func (db *DB) UpdateTaskList(ctx context.Context, id, title, description string) (model.TaskList, error) {
	title, err := model.NormalizeTitle(title)
	if err != nil {
		return model.TaskList{}, err
	}
	res, err := db.ExecContext(ctx,
		`UPDATE task_lists SET title = ?, description = ? WHERE id = ?`,
		title, nullable(strings.TrimSpace(description)), id)
	if err != nil {
		return model.TaskList{}, fmt.Errorf("update task list: %w", err)
	}
	if err := mustAffect(res); err != nil {
		return model.TaskList{}, err
	}
	return db.GetTaskList(ctx, id)
}

// DeleteTaskList removes a list. Its tasks go with it through the foreign key.
func (db *DB) DeleteTaskList(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM task_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task list: %w", err)
	}
	return mustAffect(res)
}
