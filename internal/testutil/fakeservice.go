// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

var _ service.Service = (*FakeService)(nil)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	lists  []model.TaskList
	tasks  map[string][]model.Task // listID -> tasks
	nextID int
	calls  map[string]int

	// Error injection for testing
	ListTaskListsErr  error
	CreateTaskListErr error
	GetTaskListErr    error
	UpdateTaskListErr error
	DeleteTaskListErr error
	ListTasksErr      error
	CreateTaskErr     error
	GetTaskErr        error
	UpdateTaskErr     error
	DeleteTaskErr     error

	// UpdateTaskResult, when set, is returned by UpdateTask instead of the stored task.
	UpdateTaskResult *model.Task

	// UpdateTaskInputs records every payload passed to UpdateTask.
	UpdateTaskInputs []model.TaskInput
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks: make(map[string][]model.Task),
		calls: make(map[string]int),
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(l model.TaskList) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, l)
	if f.tasks[l.ID] == nil {
		f.tasks[l.ID] = nil
	}
}

// AddTask adds a task to a list.
func (f *FakeService) AddTask(listID string, t model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], t)
}

// Calls returns how many times a method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (f *FakeService) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// Tasks returns a copy of the stored tasks of a list.
func (f *FakeService) Tasks(listID string) []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *FakeService) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// ListTaskLists implements service.Service.
func (f *FakeService) ListTaskLists(ctx context.Context) ([]model.TaskList, error) {
	f.record("ListTaskLists")
	if f.ListTaskListsErr != nil {
		return nil, f.ListTaskListsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]model.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// CreateTaskList implements service.Service.
func (f *FakeService) CreateTaskList(ctx context.Context, title, description string) (model.TaskList, error) {
	f.record("CreateTaskList")
	if f.CreateTaskListErr != nil {
		return model.TaskList{}, f.CreateTaskListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	l := model.TaskList{ID: f.newID("list"), Title: title, Description: description, Created: "2024-05-01T10:00:00"}
	f.lists = append(f.lists, l)
	f.tasks[l.ID] = nil
	return l, nil
}

// GetTaskList implements service.Service.
func (f *FakeService) GetTaskList(ctx context.Context, id string) (model.TaskList, error) {
	f.record("GetTaskList")
	if f.GetTaskListErr != nil {
		return model.TaskList{}, f.GetTaskListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if l.ID == id {
			return l, nil
		}
	}
	return model.TaskList{}, ErrNotFound
}

// UpdateTaskList implements service.Service.
func (f *FakeService) UpdateTaskList(ctx context.Context, id, title, description string) (model.TaskList, error) {
	f.record("UpdateTaskList")
	if f.UpdateTaskListErr != nil {
		return model.TaskList{}, f.UpdateTaskListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.lists {
		if l.ID == id {
			f.lists[i].Title = title
			f.lists[i].Description = description
			return f.lists[i], nil
		}
	}
	return model.TaskList{}, ErrNotFound
}

// DeleteTaskList implements service.Service.
func (f *FakeService) DeleteTaskList(ctx context.Context, id string) error {
	f.record("DeleteTaskList")
	if f.DeleteTaskListErr != nil {
		return f.DeleteTaskListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.lists {
		if l.ID == id {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			delete(f.tasks, id)
			return nil
		}
	}
	return ErrNotFound
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]model.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}
	result := make([]model.Task, len(tasks))
	copy(result, tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID string, in model.TaskInput) (model.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return model.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[listID]; !ok {
		return model.Task{}, ErrNotFound
	}
	t := model.Task{
		ID:          f.newID("task"),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      model.StatusOpen,
	}
	f.tasks[listID] = append(f.tasks[listID], t)
	return t, nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, listID, taskID string) (model.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return model.Task{}, f.GetTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks[listID] {
		if t.ID == taskID {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, listID, taskID string, in model.TaskInput) (model.Task, error) {
	f.record("UpdateTask")
	f.mu.Lock()
	f.UpdateTaskInputs = append(f.UpdateTaskInputs, in)
	f.mu.Unlock()
	if f.UpdateTaskErr != nil {
		return model.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			t.Title = in.Title
			t.Description = in.Description
			t.DueDate = in.DueDate
			t.Priority = in.Priority
			t.Status = in.Status
			f.tasks[listID][i] = t
			if f.UpdateTaskResult != nil {
				return *f.UpdateTaskResult, nil
			}
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := f.tasks[listID]
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
