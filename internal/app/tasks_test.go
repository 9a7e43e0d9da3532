package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/boardstate/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/boardstate/internal/app"
	"github.com/jsamuelsen11/boardstate/internal/domain/task"
	"github.com/jsamuelsen11/boardstate/internal/platform/idgen"
)

func newTaskStore(t *testing.T) (*app.TaskStore, *memory.Storage) {
	t.Helper()
	storage := memory.New()
	return app.NewTaskStore(storage, app.WithIDGenerator(idgen.Sequence("t"))), storage
}

func TestTaskStore_Initial(t *testing.T) {
	t.Parallel()

	s, storage := newTaskStore(t)

	assert.Equal(t, app.TaskStoreName, s.Name())
	assert.Equal(t, task.Initial(), s.State())
	assert.Zero(t, storage.Len(), "construction must not write the slot")
}

func TestTaskStore_Lifecycle(t *testing.T) {
	t.Parallel()

	s, storage := newTaskStore(t)

	s.AddTask("A", "")
	got := s.State()
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, task.Task{ID: "t-1", Title: "A", Status: task.StatusTodo}, got.Tasks[0])

	s.UpdateTask("t-1", task.StatusDone)
	assert.Equal(t, task.StatusDone, s.State().Tasks[0].Status)

	s.RemoveTask("t-1")
	assert.Empty(t, s.State().Tasks)

	var stored task.BoardState
	slotState(t, storage, app.TaskStoreName, &stored)
	assert.Empty(t, stored.Tasks)
	assert.Nil(t, stored.DraggedTask)
}

func TestTaskStore_AddTaskKeepsOrderAndDescription(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)

	s.AddTask("first", "with notes")
	s.AddTask("second", "")
	s.AddTask("third", "")

	tasks := s.State().Tasks
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{tasks[0].Title, tasks[1].Title, tasks[2].Title})
	assert.Equal(t, "with notes", tasks[0].Description)
}

func TestTaskStore_IDsAreDistinct(t *testing.T) {
	t.Parallel()

	s := app.NewTaskStore(memory.New())

	for range 100 {
		s.AddTask("x", "")
	}

	seen := map[string]bool{}
	for _, tk := range s.State().Tasks {
		assert.False(t, seen[tk.ID], "duplicate id %s", tk.ID)
		seen[tk.ID] = true
	}
}

func TestTaskStore_RemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	s.AddTask("b", "")

	s.RemoveTask("t-1")
	once := s.State()
	s.RemoveTask("t-1")

	assert.Equal(t, once, s.State())
	s.RemoveTask("missing")
	assert.Equal(t, once, s.State())
}

func TestTaskStore_UpdateMissingIsNoop(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	before := s.State()

	s.UpdateTask("missing", task.StatusInProgress)

	assert.Equal(t, before, s.State())
}

func TestTaskStore_UpdateTouchesOnlyTarget(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	s.AddTask("b", "")

	s.UpdateTask("t-2", task.StatusInProgress)

	tasks := s.State().Tasks
	assert.Equal(t, task.StatusTodo, tasks[0].Status)
	assert.Equal(t, task.StatusInProgress, tasks[1].Status)
}

func TestTaskStore_DragTransitions(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	before := s.State().Tasks

	s.DragTask(strPtr("t-1"))
	require.NotNil(t, s.State().DraggedTask)
	assert.Equal(t, "t-1", *s.State().DraggedTask)
	assert.Equal(t, before, s.State().Tasks, "dragging must not touch tasks")

	s.DragTask(strPtr("not-on-board"))
	assert.Equal(t, "not-on-board", *s.State().DraggedTask)

	s.DragTask(nil)
	assert.Nil(t, s.State().DraggedTask)
}

func TestTaskStore_DragCopiesID(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	id := "t-1"

	s.DragTask(&id)
	id = "changed"

	assert.Equal(t, "t-1", *s.State().DraggedTask)
}

func TestTaskStore_StaleDragSurvivesRemoval(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	s.DragTask(strPtr("t-1"))

	s.RemoveTask("t-1")

	require.NotNil(t, s.State().DraggedTask)
	assert.Equal(t, "t-1", *s.State().DraggedTask)
}

func TestTaskStore_SnapshotsAreImmutable(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	snapshot := s.State()

	s.UpdateTask("t-1", task.StatusDone)
	s.AddTask("b", "")

	require.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, task.StatusTodo, snapshot.Tasks[0].Status)
}

func TestTaskStore_Selectors(t *testing.T) {
	t.Parallel()

	s, _ := newTaskStore(t)
	s.AddTask("a", "")
	s.AddTask("b", "")
	s.AddTask("c", "")
	s.UpdateTask("t-2", task.StatusDone)

	todo := s.TasksByStatus(task.StatusTodo)
	require.Len(t, todo, 2)
	assert.Equal(t, "t-1", todo[0].ID)
	assert.Equal(t, "t-3", todo[1].ID)
	assert.Empty(t, s.TasksByStatus(task.StatusInProgress))

	got, ok := s.Task("t-2")
	require.True(t, ok)
	assert.Equal(t, "b", got.Title)

	_, ok = s.Task("missing")
	assert.False(t, ok)
}

func TestTaskStore_EachActionWritesThrough(t *testing.T) {
	t.Parallel()

	s, storage := newTaskStore(t)

	s.AddTask("a", "")
	s.DragTask(strPtr("t-1"))

	var stored task.BoardState
	slotState(t, storage, app.TaskStoreName, &stored)
	require.Len(t, stored.Tasks, 1)
	require.NotNil(t, stored.DraggedTask)
	assert.Equal(t, "t-1", *stored.DraggedTask)
}
