// Package task holds the task board data model.
package task

// Task is a card on the board. ID is assigned at creation and never changes.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
}

// BoardState is the task store's state. DraggedTask, when non-nil, names the
// task being moved between columns. It is not cleared when that task is
// removed.
type BoardState struct {
	Tasks       []Task  `json:"tasks"`
	DraggedTask *string `json:"draggedTask"`
}

// Initial returns the empty board.
func Initial() BoardState {
	return BoardState{Tasks: []Task{}}
}
