// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

// TaskHandler handles HTTP requests for the task board.
type TaskHandler struct {
	board ports.TaskBoard
}

// NewTaskHandler creates a new TaskHandler backed by the given board.
func NewTaskHandler(board ports.TaskBoard) *TaskHandler {
	return &TaskHandler{board: board}
}

// GetBoard handles GET /api/v1/tasks.
func (h *TaskHandler) GetBoard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToBoardResponse(h.board.State()))
}

// CreateTask handles POST /api/v1/tasks. The new task's id is not known to
// the caller, so the whole board is returned.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.board.AddTask(req.Title, req.Description)

	writeJSON(w, http.StatusCreated, dto.ToBoardResponse(h.board.State()))
}

// UpdateTask handles PATCH /api/v1/tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.board.UpdateTask(id, task.Status(req.Status))

	t, ok := h.board.Task(id)
	if !ok {
		dto.WriteErrorResponse(w, r, fmt.Errorf("task %s: %w", id, domain.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTaskResponse(&t))
}

// DeleteTask handles DELETE /api/v1/tasks/{id}. Deleting an absent task
// succeeds.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if !requestLive(w, r) {
		return
	}
	h.board.RemoveTask(id)

	w.WriteHeader(http.StatusNoContent)
}

// DragTask handles PUT /api/v1/tasks/drag.
func (h *TaskHandler) DragTask(w http.ResponseWriter, r *http.Request) {
	var req dto.DragTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.board.DragTask(req.ID)

	writeJSON(w, http.StatusOK, dto.ToBoardResponse(h.board.State()))
}

// Events handles GET /api/v1/tasks/events.
func (h *TaskHandler) Events(w http.ResponseWriter, r *http.Request) {
	streamState(w, r, h.board, dto.ToBoardResponse)
}
