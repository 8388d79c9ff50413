// Package service defines the backend interface the views depend on.
package service

import (
	"context"

	"github.com/dori/taskflow/internal/model"
)

// Service is implemented by the REST client and by test doubles.
// Views never import the HTTP client directly.
type Service interface {
	// ListTaskLists returns every list in server order.
	ListTaskLists(ctx context.Context) ([]model.TaskList, error)
	CreateTaskList(ctx context.Context, title, description string) (model.TaskList, error)
	GetTaskList(ctx context.Context, id string) (model.TaskList, error)
	UpdateTaskList(ctx context.Context, id, title, description string) (model.TaskList, error)
	// DeleteTaskList also removes the list's tasks on the server.
	DeleteTaskList(ctx context.Context, id string) error

	ListTasks(ctx context.Context, listID string) ([]model.Task, error)
	CreateTask(ctx context.Context, listID string, in model.TaskInput) (model.Task, error)
	GetTask(ctx context.Context, listID, taskID string) (model.Task, error)
	// UpdateTask sends the complete task, status included.
	UpdateTask(ctx context.Context, listID, taskID string, in model.TaskInput) (model.Task, error)
	DeleteTask(ctx context.Context, listID, taskID string) error
}
