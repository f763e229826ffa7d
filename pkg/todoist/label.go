package todoist

// Label is a named tag tasks reference by ID in their label_ids list.
type Label struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color int    `json:"color,omitempty"`
	Order int64  `json:"order,omitempty"`
}

// labelCreate is the write payload for a new label.
type labelCreate struct {
	Name  string `json:"name"`
	Color int    `json:"color,omitempty"`
}
