package server

import (
	"net/http"

	"github.com/dori/taskflow/internal/model"
)

type taskListRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (req taskListRequest) description() string {
	if req.Description == nil {
		return ""
	}
	return *req.Description
}

type taskRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	DueDate     *string        `json:"dueDate"`
	Priority    model.Priority `json:"priority"`
	Status      model.Status   `json:"status"`
}

func (req taskRequest) input() model.TaskInput {
	in := model.TaskInput{
		Title:    req.Title,
		Priority: req.Priority,
		Status:   req.Status,
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.DueDate != nil {
		in.DueDate = *req.DueDate
	}
	return in
}

const (
	listNotFound = "task list not found"
	taskNotFound = "task not found"
)

func (s *Server) handleListTaskLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.ListTaskLists(r.Context())
	if err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateTaskList(w http.ResponseWriter, r *http.Request) {
	var req taskListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := s.store.CreateTaskList(r.Context(), req.Title, req.description())
	if err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGetTaskList(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.GetTaskList(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateTaskList(w http.ResponseWriter, r *http.Request) {
	var req taskListRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := s.store.UpdateTaskList(r.Context(), r.PathValue("id"), req.Title, req.description())
	if err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteTaskList(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTaskList(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(r.Context(), r.PathValue("listId"))
	if err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.CreateTask(r.Context(), r.PathValue("listId"), req.input())
	if err != nil {
		s.writeStoreError(w, r, listNotFound, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTask(r.Context(), r.PathValue("listId"), r.PathValue("taskId"))
	if err != nil {
		s.writeStoreError(w, r, taskNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.store.UpdateTask(r.Context(), r.PathValue("listId"), r.PathValue("taskId"), req.input())
	if err != nil {
		s.writeStoreError(w, r, taskNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTask(r.Context(), r.PathValue("listId"), r.PathValue("taskId")); err != nil {
		s.writeStoreError(w, r, taskNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
