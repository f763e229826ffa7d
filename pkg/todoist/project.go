package todoist

// Project is a task container as the service reports it. ID, Order,
// Indent and CommentCount are assigned server-side; only Name and Color
// travel in create requests.
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Color        int    `json:"color,omitempty"`
	Order        int64  `json:"order,omitempty"`
	Indent       int    `json:"indent,omitempty"`
	CommentCount int    `json:"comment_count,omitempty"`
}

// projectCreate is the write payload for a new project. Color 0 means
// "let the service pick".
type projectCreate struct {
	Name  string `json:"name"`
	Color int    `json:"color,omitempty"`
}
