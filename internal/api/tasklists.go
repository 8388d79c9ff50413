package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dori/taskflow/internal/model"
)

const taskListsPath = "/api/task-lists"

type taskListPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func taskListPath(id string) string {
	return taskListsPath + "/" + url.PathEscape(id)
}

// ListTaskLists returns all task lists in server order.
func (c *Client) ListTaskLists(ctx context.Context) ([]model.TaskList, error) {
	return call[[]model.TaskList](ctx, c, http.MethodGet, taskListsPath, nil)
}

// CreateTaskList creates a list and returns the server's copy.
func (c *Client) CreateTaskList(ctx context.Context, title, description string) (model.TaskList, error) {
	return call[model.TaskList](ctx, c, http.MethodPost, taskListsPath, taskListPayload{
		Title:       title,
		Description: description,
	})
}

// GetTaskList fetches one list.
func (c *Client) GetTaskList(ctx context.Context, id string) (model.TaskList, error) {
	return call[model.TaskList](ctx, c, http.MethodGet, taskListPath(id), nil)
}

// UpdateTaskList replaces a list's title and description.
func (c *Client) UpdateTaskList(ctx context.Context, id, title, description string) (model.TaskList, error) {
	return call[model.TaskList](ctx, c, http.MethodPut, taskListPath(id), taskListPayload{
		ID:          id,
		Title:       title,
		Description: description,
	})
}

// DeleteTaskList removes a list and its tasks.
func (c *Client) DeleteTaskList(ctx context.Context, id string) error {
	_, err := c.request(ctx, http.MethodDelete, taskListPath(id), nil)
	return err
}
