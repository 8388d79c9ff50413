package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dori/taskflow/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithRequestID(func() string { return "req-1" }))
}

func TestNormalizeDueDate(t *testing.T) {
	if got := NormalizeDueDate(""); got != nil {
		t.Errorf("NormalizeDueDate(\"\") = %q, want nil", *got)
	}
	tests := []struct {
		in, want string
	}{
		{"2024-05-01", "2024-05-01T00:00:00"},
		{"2024-05-01T09:30:00", "2024-05-01T09:30:00"},
	}
	for _, tt := range tests {
		got := NormalizeDueDate(tt.in)
		if got == nil || *got != tt.want {
			t.Errorf("NormalizeDueDate(%q) = %v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestListTaskLists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/task-lists" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get(RequestIDHeader); got != "req-1" {
			t.Errorf("request id = %q, want req-1", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":"l1","title":"Groceries","created":"2024-05-01T10:00:00"}]`)
	})

	lists, err := c.ListTaskLists(context.Background())
	if err != nil {
		t.Fatalf("ListTaskLists() error = %v", err)
	}
	if len(lists) != 1 || lists[0].ID != "l1" || lists[0].Title != "Groceries" {
		t.Errorf("ListTaskLists() = %+v", lists)
	}
}

func TestCreateTaskListOmitsEmptyDescription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, ok := body["description"]; ok {
			t.Errorf("description should be omitted, body = %v", body)
		}
		if body["title"] != "Groceries" {
			t.Errorf("title = %v", body["title"])
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":"l1","title":"Groceries"}`)
	})

	l, err := c.CreateTaskList(context.Background(), "Groceries", "")
	if err != nil {
		t.Fatalf("CreateTaskList() error = %v", err)
	}
	if l.ID != "l1" {
		t.Errorf("ID = %q, want l1", l.ID)
	}
}

func TestCreateTaskPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task-lists/l1/tasks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if v, ok := body["description"]; !ok || v != nil {
			t.Errorf("description = %v, want null", v)
		}
		if body["dueDate"] != "2024-05-01T00:00:00" {
			t.Errorf("dueDate = %v", body["dueDate"])
		}
		if body["priority"] != "LOW" {
			t.Errorf("priority = %v", body["priority"])
		}
		if _, ok := body["status"]; ok {
			t.Error("create payload should not carry status")
		}
		io.WriteString(w, `{"id":"t1","title":"Buy milk","priority":"LOW","status":"OPEN"}`)
	})

	task, err := c.CreateTask(context.Background(), "l1", model.TaskInput{
		Title:    "Buy milk",
		DueDate:  "2024-05-01",
		Priority: model.PriorityLow,
	})
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if task.Status != model.StatusOpen {
		t.Errorf("Status = %q, want OPEN", task.Status)
	}
}

func TestUpdateTaskSendsFullPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/task-lists/l1/tasks/t1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		for _, k := range []string{"id", "title", "description", "dueDate", "priority", "status"} {
			if _, ok := body[k]; !ok {
				t.Errorf("payload missing %q", k)
			}
		}
		if body["status"] != "CLOSED" {
			t.Errorf("status = %v", body["status"])
		}
		io.WriteString(w, `{"id":"t1","title":"Buy milk","priority":"LOW","status":"CLOSED"}`)
	})

	_, err := c.UpdateTask(context.Background(), "l1", "t1", model.TaskInput{
		ID:       "t1",
		Title:    "Buy milk",
		Priority: model.PriorityLow,
		Status:   model.StatusClosed,
	})
	if err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
}

func TestDeleteNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.DeleteTask(context.Background(), "l1", "t1"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"server message", http.StatusBadRequest, `{"error":"Task list title must be present"}`, "Task list title must be present"},
		{"no body", http.StatusInternalServerError, ``, "HTTP 500"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "HTTP 502"},
		{"empty error field", http.StatusNotFound, `{"error":""}`, "HTTP 404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			_, err := c.GetTaskList(context.Background(), "l1")
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", apiErr.Error(), tt.want)
			}
		})
	}
}

func TestInvalidJSONSuccessYieldsZeroValue(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})
	l, err := c.GetTaskList(context.Background(), "l1")
	if err != nil {
		t.Fatalf("GetTaskList() error = %v", err)
	}
	if l != (model.TaskList{}) {
		t.Errorf("GetTaskList() = %+v, want zero value", l)
	}
}

func TestTransportErrorIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.ListTaskLists(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0", apiErr.Status)
	}
	if apiErr.Message == "" {
		t.Error("Message should not be empty")
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.ListTaskLists(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Message != "request timed out" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
