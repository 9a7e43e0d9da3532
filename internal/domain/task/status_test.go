package task

import "testing"

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{name: "TODO is valid", status: StatusTodo, want: true},
		{name: "IN_PROGRESS is valid", status: StatusInProgress, want: true},
		{name: "DONE is valid", status: StatusDone, want: true},
		{name: "empty string is invalid", status: "", want: false},
		{name: "lowercase is invalid", status: "todo", want: false},
		{name: "unknown is invalid", status: "BLOCKED", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestStatuses_BoardOrder(t *testing.T) {
	t.Parallel()

	want := []Status{StatusTodo, StatusInProgress, StatusDone}
	if len(Statuses) != len(want) {
		t.Fatalf("len(Statuses) = %d, want %d", len(Statuses), len(want))
	}
	for i := range want {
		if Statuses[i] != want[i] {
			t.Errorf("Statuses[%d] = %q, want %q", i, Statuses[i], want[i])
		}
	}
}
