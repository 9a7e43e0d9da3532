package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/boardstate/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/boardstate/internal/app"
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
)

func newTaskHandler(t *testing.T) (*handlers.TaskHandler, *app.TaskStore) {
	t.Helper()
	tasks, _, _ := newStores(t)
	return handlers.NewTaskHandler(tasks), tasks
}

// --- GetBoard ---

func TestGetBoard_Empty(t *testing.T) {
	t.Parallel()
	h, _ := newTaskHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	h.GetBoard(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.BoardResponse](t, rec)
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
	if resp.DraggedTask != nil {
		t.Errorf("DraggedTask = %v, want nil", resp.DraggedTask)
	}
}

// --- CreateTask ---

func TestCreateTask_Success(t *testing.T) {
	t.Parallel()
	h, tasks := newTaskHandler(t)

	body := jsonBody(t, dto.CreateTaskRequest{Title: "Write docs", Description: "README"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body)
	req.Header.Set("Content-Type", "application/json")
	h.CreateTask(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.BoardResponse](t, rec)
	if resp.Count != 1 {
		t.Fatalf("Count = %d, want 1", resp.Count)
	}
	if resp.Tasks[0].ID != "t-1" || resp.Tasks[0].Status != "TODO" {
		t.Errorf("Tasks[0] = %+v, want id t-1 in TODO", resp.Tasks[0])
	}
	if _, ok := tasks.Task("t-1"); !ok {
		t.Error("task t-1 not in store")
	}
}

func TestCreateTask_InvalidJSON(t *testing.T) {
	t.Parallel()
	h, tasks := newTaskHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString("{bad"))
	req.Header.Set("Content-Type", "application/json")
	h.CreateTask(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	if n := len(tasks.State().Tasks); n != 0 {
		t.Errorf("len(Tasks) = %d, want 0", n)
	}
}

func TestCreateTask_ValidationError(t *testing.T) {
	t.Parallel()
	h, _ := newTaskHandler(t)

	body := jsonBody(t, dto.CreateTaskRequest{Title: " "})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", body)
	h.CreateTask(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.title" {
		t.Errorf("Errors = %+v, want one body.title error", resp.Errors)
	}
}

// --- UpdateTask ---

func TestUpdateTask_Success(t *testing.T) {
	t.Parallel()
	h, tasks := newTaskHandler(t)
	tasks.AddTask("Write docs", "")

	body := jsonBody(t, dto.UpdateTaskRequest{Status: "IN_PROGRESS"})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/t-1", body), map[string]string{"id": "t-1"})
	h.UpdateTask(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.TaskResponse](t, rec)
	if resp.Status != "IN_PROGRESS" {
		t.Errorf("Status = %q, want %q", resp.Status, "IN_PROGRESS")
	}
	if got := tasks.TasksByStatus(task.StatusInProgress); len(got) != 1 {
		t.Errorf("TasksByStatus(IN_PROGRESS) = %v, want one task", got)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	t.Parallel()
	h, _ := newTaskHandler(t)

	body := jsonBody(t, dto.UpdateTaskRequest{Status: "DONE"})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/missing", body), map[string]string{"id": "missing"})
	h.UpdateTask(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

func TestUpdateTask_InvalidStatus(t *testing.T) {
	t.Parallel()
	h, tasks := newTaskHandler(t)
	tasks.AddTask("Write docs", "")

	body := jsonBody(t, dto.UpdateTaskRequest{Status: "ARCHIVED"})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/t-1", body), map[string]string{"id": "t-1"})
	h.UpdateTask(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
	if got, _ := tasks.Task("t-1"); got.Status != task.StatusTodo {
		t.Errorf("Status = %q, want unchanged %q", got.Status, task.StatusTodo)
	}
}

func TestUpdateTask_MissingID(t *testing.T) {
	t.Parallel()
	h, _ := newTaskHandler(t)

	body := jsonBody(t, dto.UpdateTaskRequest{Status: "DONE"})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/tasks/", body), map[string]string{"id": ""})
	h.UpdateTask(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- DeleteTask ---

func TestDeleteTask_Success(t *testing.T) {
	t.Parallel()
	h, tasks := newTaskHandler(t)
	tasks.AddTask("Write docs", "")

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/t-1", nil), map[string]string{"id": "t-1"})
	h.DeleteTask(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
	if _, ok := tasks.Task("t-1"); ok {
		t.Error("task t-1 still in store")
	}
}

func TestDeleteTask_AbsentIsNoContent(t *testing.T) {
	t.Parallel()
	h, _ := newTaskHandler(t)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/tasks/nope", nil), map[string]string{"id": "nope"})
	h.DeleteTask(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
}

// --- DragTask ---

func TestDragTask_SetAndClear(t *testing.T) {
	t.Parallel()
	h, tasks := newTaskHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/drag", jsonBody(t, dto.DragTaskRequest{ID: stringPtr("t-9")}))
	h.DragTask(rec, req)

	requireStatus(t, rec, http.StatusOK)
	if got := tasks.State().DraggedTask; got == nil || *got != "t-9" {
		t.Errorf("DraggedTask = %v, want t-9", got)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/tasks/drag", bytes.NewBufferString(`{"id":null}`))
	h.DragTask(rec, req)

	requireStatus(t, rec, http.StatusOK)
	if got := tasks.State().DraggedTask; got != nil {
		t.Errorf("DraggedTask = %v, want nil", *got)
	}
}
