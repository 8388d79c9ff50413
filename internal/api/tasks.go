package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/dori/taskflow/internal/model"
)

// createTaskPayload omits status; the server opens new tasks.
type createTaskPayload struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	DueDate     *string        `json:"dueDate"`
	Priority    model.Priority `json:"priority"`
}

type updateTaskPayload struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	DueDate     *string        `json:"dueDate"`
	Priority    model.Priority `json:"priority"`
	Status      model.Status   `json:"status"`
}

// NormalizeDueDate converts a form value into the wire representation.
// Empty becomes null, a bare date gets midnight appended and anything with a time passes through.
func NormalizeDueDate(s string) *string {
	if s == "" {
		return nil
	}
	if strings.Contains(s, "T") {
		return &s
	}
	v := s + "T00:00:00"
	return &v
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func tasksPath(listID string) string {
	return "/task-lists/" + url.PathEscape(listID) + "/tasks"
}

func taskPath(listID, taskID string) string {
	return tasksPath(listID) + "/" + url.PathEscape(taskID)
}

// ListTasks returns the tasks of a list in server order.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]model.Task, error) {
	return call[[]model.Task](ctx, c, http.MethodGet, tasksPath(listID), nil)
}

// CreateTask adds a task to a list.
func (c *Client) CreateTask(ctx context.Context, listID string, in model.TaskInput) (model.Task, error) {
	return call[model.Task](ctx, c, http.MethodPost, tasksPath(listID), createTaskPayload{
		Title:       in.Title,
		Description: optionalString(in.Description),
		DueDate:     NormalizeDueDate(in.DueDate),
		Priority:    in.Priority,
	})
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, listID, taskID string) (model.Task, error) {
	return call[model.Task](ctx, c, http.MethodGet, taskPath(listID, taskID), nil)
}

// UpdateTask sends the full task. Status is included so toggles go through here too.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID string, in model.TaskInput) (model.Task, error) {
	return call[model.Task](ctx, c, http.MethodPut, taskPath(listID, taskID), updateTaskPayload{
		ID:          in.ID,
		Title:       in.Title,
		Description: optionalString(in.Description),
		DueDate:     NormalizeDueDate(in.DueDate),
		Priority:    in.Priority,
		Status:      in.Status,
	})
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	_, err := c.request(ctx, http.MethodDelete, taskPath(listID, taskID), nil)
	return err
}
