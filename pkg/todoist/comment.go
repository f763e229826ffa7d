package todoist

// Comment is a note attached to a task.
type Comment struct {
	ID      int64  `json:"id"`
	TaskID  int64  `json:"task_id"`
	Content string `json:"content"`
	Posted  string `json:"posted,omitempty"`
}

// commentCreate is the write payload for a new task comment.
type commentCreate struct {
	TaskID  int64  `json:"task_id"`
	Content string `json:"content"`
}
