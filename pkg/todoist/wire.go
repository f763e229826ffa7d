package todoist

import "encoding/json"

// The service speaks two schemas for tasks. Responses carry the full read
// model, including server-assigned fields and a nested due object.
// Requests carry a narrower write model with a flattened due
// representation: at most one of due_datetime, due_date or due_string is
// sent, chosen by specificity. A task without due information sends no due
// fields at all — that omission is how a due date is cleared, never
// empty-string placeholders.

// dueLang accompanies due_string so the service parses the free text as
// English.
const dueLang = "en"

// dueForm is the single due representation resolved for a write request.
type dueForm int

const (
	dueNone dueForm = iota
	dueAsString
	dueAsDate
	dueAsDatetime
)

// resolveDueForm reduces optional due information to the one form the
// write schema allows: exact instant beats whole day beats human text.
func resolveDueForm(d *Due) (dueForm, string) {
	switch {
	case d == nil:
		return dueNone, ""
	case d.datetime != nil:
		return dueAsDatetime, *d.datetime
	case d.date != nil:
		return dueAsDate, *d.date
	default:
		return dueAsString, d.str
	}
}

// taskWrite is the request schema. Declaration order fixes the emitted
// field order. project_id and order encode as null when unset; label_ids
// always encodes, as [] when empty. Server-assigned fields have no slot
// here on purpose.
type taskWrite struct {
	Content     string  `json:"content"`
	ProjectID   *int64  `json:"project_id"`
	Order       *int64  `json:"order"`
	LabelIDs    []int64 `json:"label_ids"`
	Priority    int     `json:"priority"`
	DueDatetime *string `json:"due_datetime,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	DueString   *string `json:"due_string,omitempty"`
	DueLang     *string `json:"due_lang,omitempty"`
}

// MarshalJSON encodes the task in the write schema. Encoding is stateless
// and does not validate field contents.
func (t Task) MarshalJSON() ([]byte, error) {
	w := taskWrite{
		Content:   t.content,
		ProjectID: t.projectID,
		Order:     t.order,
		LabelIDs:  t.labelIDs,
		Priority:  t.priority,
	}
	if w.LabelIDs == nil {
		w.LabelIDs = []int64{}
	}

	form, value := resolveDueForm(t.due)
	switch form {
	case dueAsDatetime:
		w.DueDatetime = &value
	case dueAsDate:
		w.DueDate = &value
	case dueAsString:
		w.DueString = &value
		lang := dueLang
		w.DueLang = &lang
	case dueNone:
		// No due fields: the service reads this as "no due date".
	}

	return json.Marshal(w)
}

// dueRead is the nested due object of the read schema. Informational
// extras the service may add (recurring flags and the like) are
// deliberately not declared and therefore dropped.
type dueRead struct {
	String   *string `json:"string"`
	Date     *string `json:"date"`
	Datetime *string `json:"datetime"`
	Timezone *string `json:"timezone"`
}

// taskRead is the response schema. Pointers distinguish absent fields from
// zero values so required-field checks can run after parsing.
type taskRead struct {
	ID           *int64   `json:"id"`
	ProjectID    *int64   `json:"project_id"`
	Content      *string  `json:"content"`
	Completed    *bool    `json:"completed"`
	LabelIDs     []int64  `json:"label_ids"`
	Order        *int64   `json:"order"`
	Indent       *int     `json:"indent"`
	Priority     *int     `json:"priority"`
	Due          *dueRead `json:"due"`
	URL          *string  `json:"url"`
	CommentCount *int     `json:"comment_count"`
}

// UnmarshalJSON decodes a task from the read schema. Wire field order does
// not matter and unknown fields are ignored; missing or mistyped required
// fields (content, completed, priority, label_ids, and string inside due)
// yield a DecodeError.
func (t *Task) UnmarshalJSON(data []byte) error {
	var r taskRead
	if err := json.Unmarshal(data, &r); err != nil {
		return &DecodeError{Err: err}
	}

	switch {
	case r.Content == nil:
		return &DecodeError{Field: "content", Err: ErrMissingField}
	case r.Completed == nil:
		return &DecodeError{Field: "completed", Err: ErrMissingField}
	case r.Priority == nil:
		return &DecodeError{Field: "priority", Err: ErrMissingField}
	case r.LabelIDs == nil:
		return &DecodeError{Field: "label_ids", Err: ErrMissingField}
	}

	var due *Due
	if r.Due != nil {
		if r.Due.String == nil {
			return &DecodeError{Field: "due.string", Err: ErrMissingField}
		}
		due = &Due{
			str:      *r.Due.String,
			date:     r.Due.Date,
			datetime: r.Due.Datetime,
			timezone: r.Due.Timezone,
		}
	}

	*t = Task{
		id:           r.ID,
		projectID:    r.ProjectID,
		content:      *r.Content,
		completed:    *r.Completed,
		labelIDs:     r.LabelIDs,
		order:        r.Order,
		indent:       r.Indent,
		priority:     *r.Priority,
		due:          due,
		url:          r.URL,
		commentCount: r.CommentCount,
	}
	return nil
}
