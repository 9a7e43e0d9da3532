package app

import (
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
	"github.com/jsamuelsen11/boardstate/internal/ports"
	"github.com/jsamuelsen11/boardstate/internal/state"
	"github.com/jsamuelsen11/boardstate/internal/store"
)

// TaskStoreName is the durable slot of the task store.
const TaskStoreName = "task-store"

// TaskActions are the task board mutations.
type TaskActions struct {
	set   state.Setter[task.BoardState]
	newID idgen.Func
}

// AddTask appends a new task in status TODO.
func (a TaskActions) AddTask(title, description string) {
	id := a.newID()
	a.set(func(s task.BoardState) task.BoardState {
		tasks := make([]task.Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, s.Tasks...)
		s.Tasks = append(tasks, task.Task{
			ID:          id,
			Title:       title,
			Description: description,
			Status:      task.StatusTodo,
		})
		return s
	})
}

// DragTask marks id as the task being dragged, or clears the mark when id is
// nil. The id is not checked against the board.
func (a TaskActions) DragTask(id *string) {
	if id != nil {
		v := *id
		id = &v
	}
	a.set(func(s task.BoardState) task.BoardState {
		s.DraggedTask = id
		return s
	})
}

// RemoveTask deletes the task with the given id. Absent ids are a no-op.
func (a TaskActions) RemoveTask(id string) {
	a.set(func(s task.BoardState) task.BoardState {
		tasks := make([]task.Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != id {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = tasks
		return s
	})
}

// UpdateTask moves the task with the given id to status. Absent ids are a
// no-op.
func (a TaskActions) UpdateTask(id string, status task.Status) {
	a.set(func(s task.BoardState) task.BoardState {
		tasks := make([]task.Task, len(s.Tasks))
		for i, t := range s.Tasks {
			if t.ID == id {
				t.Status = status
			}
			tasks[i] = t
		}
		s.Tasks = tasks
		return s
	})
}

var _ ports.TaskBoard = (*TaskStore)(nil)

// TaskStore is the persisted task board.
type TaskStore struct {
	*store.Handle[task.BoardState, TaskActions]
	TaskActions
}

// NewTaskStore builds the task store with an empty board. It performs no I/O.
func NewTaskStore(storage ports.DurableStorage, opts ...Option) *TaskStore {
	o := newOptions(opts)
	h := store.Create(TaskStoreName, task.Initial(),
		func(set state.Setter[task.BoardState]) TaskActions {
			return TaskActions{set: set, newID: o.newID}
		},
		storage, o.storeOpts...)
	return &TaskStore{Handle: h, TaskActions: h.Actions()}
}

// TasksByStatus returns the tasks in status, in board order.
func (s *TaskStore) TasksByStatus(status task.Status) []task.Task {
	var out []task.Task
	for _, t := range s.State().Tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Task returns the task with the given id.
func (s *TaskStore) Task(id string) (task.Task, bool) {
	for _, t := range s.State().Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}
