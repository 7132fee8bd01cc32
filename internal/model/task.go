package model

// Task is the domain model for a single to-do entry.
// Edit mode is row state and never lives here.
type Task struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// CloneTasks returns a copy of tasks that shares no backing array with it.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
