package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dori/taskflow/internal/db"
	"github.com/dori/taskflow/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, nil)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestTaskListEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/task-lists", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list = %d %q", rec.Code, rec.Body.String())
	}

	rec = do(t, s, http.MethodPost, "/api/task-lists", `{"title":"Groceries"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %q", rec.Code, rec.Body.String())
	}
	created := decode[model.TaskList](t, rec)
	if created.ID == "" || created.Title != "Groceries" || created.Created == "" {
		t.Errorf("created = %+v", created)
	}
	if strings.Contains(rec.Body.String(), "description") {
		t.Errorf("empty description should be omitted: %s", rec.Body.String())
	}

	rec = do(t, s, http.MethodPut, "/api/task-lists/"+created.ID, `{"id":"`+created.ID+`","title":"Shopping","description":"weekly"}`)
	if got := decode[model.TaskList](t, rec); rec.Code != http.StatusOK || got.Title != "Shopping" || got.Description != "weekly" {
		t.Errorf("update = %d %+v", rec.Code, got)
	}

	rec = do(t, s, http.MethodGet, "/api/task-lists/"+created.ID, "")
	if got := decode[model.TaskList](t, rec); got.Title != "Shopping" {
		t.Errorf("get = %+v", got)
	}

	rec = do(t, s, http.MethodDelete, "/api/task-lists/"+created.ID, "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Errorf("delete = %d %q", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodGet, "/api/task-lists/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}

func TestTaskEndpoints(t *testing.T) {
	s := newTestServer(t)
	list := decode[model.TaskList](t, do(t, s, http.MethodPost, "/api/task-lists", `{"title":"Groceries"}`))
	base := "/task-lists/" + list.ID + "/tasks"

	rec := do(t, s, http.MethodPost, base, `{"title":"Buy milk","description":null,"dueDate":"2024-05-01T00:00:00","priority":"LOW"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d %q", rec.Code, rec.Body.String())
	}
	milk := decode[model.Task](t, rec)
	if milk.Status != model.StatusOpen || milk.Priority != model.PriorityLow || milk.DueDate != "2024-05-01T00:00:00" {
		t.Errorf("milk = %+v", milk)
	}

	rec = do(t, s, http.MethodPut, base+"/"+milk.ID, `{"id":"`+milk.ID+`","title":"Buy milk","description":null,"dueDate":null,"priority":"LOW","status":"CLOSED"}`)
	updated := decode[model.Task](t, rec)
	if rec.Code != http.StatusOK || updated.Status != model.StatusClosed || updated.DueDate != "" {
		t.Errorf("update = %d %+v", rec.Code, updated)
	}

	tasks := decode[[]model.Task](t, do(t, s, http.MethodGet, base, ""))
	if len(tasks) != 1 || tasks[0] != updated {
		t.Errorf("tasks = %+v", tasks)
	}

	if rec = do(t, s, http.MethodDelete, base+"/"+milk.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete = %d", rec.Code)
	}
	if rec = do(t, s, http.MethodGet, base+"/"+milk.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", rec.Code)
	}
}

func TestErrorResponses(t *testing.T) {
	s := newTestServer(t)
	list := decode[model.TaskList](t, do(t, s, http.MethodPost, "/api/task-lists", `{"title":"Groceries"}`))

	tests := []struct {
		name, method, path, body string
		status                   int
		message                  string
	}{
		{"blank list title", http.MethodPost, "/api/task-lists", `{"title":"  "}`, http.StatusBadRequest, model.TitleRequiredMessage},
		{"broken json", http.MethodPost, "/api/task-lists", `{"title":`, http.StatusBadRequest, ""},
		{"empty body", http.MethodPost, "/api/task-lists", ``, http.StatusBadRequest, "invalid JSON: empty body"},
		{"bad priority", http.MethodPost, "/task-lists/" + list.ID + "/tasks", `{"title":"x","priority":"URGENT"}`, http.StatusBadRequest, ""},
		{"missing list", http.MethodGet, "/task-lists/nope/tasks", ``, http.StatusNotFound, "task list not found"},
		{"missing task", http.MethodPut, "/task-lists/" + list.ID + "/tasks/nope", `{"title":"x"}`, http.StatusNotFound, "task not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			body := decode[map[string]string](t, rec)
			if body["error"] == "" {
				t.Fatal("missing error field")
			}
			if tt.message != "" && body["error"] != tt.message {
				t.Errorf("error = %q, want %q", body["error"], tt.message)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(t)
	huge := `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, s, http.MethodPost, "/api/task-lists", huge)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "exceeds") {
		t.Errorf("oversized body = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)
	s.newID = func() string { return "generated" }

	rec := do(t, s, http.MethodGet, "/healthz", "")
	if got := rec.Header().Get(RequestIDHeader); got != "generated" {
		t.Errorf("generated id = %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("echoed id = %q", got)
	}
}
