package todoist

// Task priority bounds used by the service: 1 is normal, 4 is urgent.
const (
	PriorityNormal = 1
	PriorityUrgent = 4
)

// Due describes when a task is due. The human-readable string is always
// present and acts as the fallback form; date (whole day, YYYY-MM-DD) and
// datetime (exact instant, RFC3339 UTC) are only set when the caller picks
// a structured form. Setting one form invalidates the others because the
// service accepts a single due representation per request.
//
// Due does not parse or validate calendar formats; that is the caller's
// responsibility.
type Due struct {
	str      string
	date     *string
	datetime *string
	timezone *string
}

// NewDue creates due information from a human-defined description in
// arbitrary format (e.g. "tomorrow at noon") that the service will parse.
// Date, datetime and timezone start unset.
func NewDue(human string) Due {
	return Due{str: human}
}

// SetString replaces the human-defined description and clears date,
// datetime and timezone.
func (d *Due) SetString(human string) {
	d.str = human
	d.date = nil
	d.datetime = nil
	d.timezone = nil
}

// SetDate sets the whole-day due date (YYYY-MM-DD) and mirrors it into the
// display string so the fallback form never goes stale. Datetime and
// timezone are cleared.
func (d *Due) SetDate(date string) {
	d.str = date
	d.date = &date
	d.datetime = nil
	d.timezone = nil
}

// SetDatetime sets the exact due instant (RFC3339 in UTC) and mirrors it
// into the display string. Date and timezone are cleared.
func (d *Due) SetDatetime(datetime string) {
	d.str = datetime
	d.date = nil
	d.datetime = &datetime
	d.timezone = nil
}

// String returns the human-readable due description.
func (d Due) String() string { return d.str }

// Date returns the whole-day due date, if set.
func (d Due) Date() (string, bool) {
	if d.date == nil {
		return "", false
	}
	return *d.date, true
}

// Datetime returns the exact due instant, if set.
func (d Due) Datetime() (string, bool) {
	if d.datetime == nil {
		return "", false
	}
	return *d.datetime, true
}

// Timezone returns the user timezone the service reported, if any. It is
// informational: decoded from responses, never required on requests.
func (d Due) Timezone() (string, bool) {
	if d.timezone == nil {
		return "", false
	}
	return *d.timezone, true
}

// Task is the aggregate task record exchanged with the service. Build one
// with NewTask or by decoding a service response; the zero value is not
// meaningful. Fields the service assigns (id, order, indent, url, comment
// count) are read-only and only ever populated by decoding.
type Task struct {
	id           *int64
	projectID    *int64
	content      string
	completed    bool
	labelIDs     []int64
	order        *int64
	indent       *int
	priority     int
	due          *Due
	url          *string
	commentCount *int
}

// NewTask creates a task that has not been sent to the service yet: normal
// priority, not completed, no labels, no due date, server-assigned fields
// unset.
func NewTask(content string) *Task {
	return &Task{content: content, priority: PriorityNormal}
}

// SetContent replaces the task description.
func (t *Task) SetContent(content string) {
	t.content = content
}

// SetCompleted marks the task completed or not.
func (t *Task) SetCompleted(completed bool) {
	t.completed = completed
}

// SetPriority sets the task priority, 1 (normal) to 4 (urgent). It returns
// ErrInvalidPriority for values outside that range and leaves the task
// unchanged.
func (t *Task) SetPriority(priority int) error {
	if priority < PriorityNormal || priority > PriorityUrgent {
		return &ValidationError{Field: "priority", Err: ErrInvalidPriority}
	}
	t.priority = priority
	return nil
}

// AddLabelID associates a label with the task. Labels keep their insertion
// order and duplicates are not collapsed.
func (t *Task) AddLabelID(id int64) {
	t.labelIDs = append(t.labelIDs, id)
}

// RemoveLabelID removes every occurrence of the label from the task,
// preserving the relative order of the remaining labels.
func (t *Task) RemoveLabelID(id int64) {
	kept := t.labelIDs[:0]
	for _, l := range t.labelIDs {
		if l != id {
			kept = append(kept, l)
		}
	}
	t.labelIDs = kept
}

// SetDue replaces the due information. Passing nil clears it, which on the
// wire means omitting every due field — the way the service is told to
// drop a due date. The task keeps its own copy of the value.
func (t *Task) SetDue(due *Due) {
	if due == nil {
		t.due = nil
		return
	}
	d := *due
	t.due = &d
}

// SetProjectID moves the task to the given project.
func (t *Task) SetProjectID(projectID int64) {
	t.projectID = &projectID
}

// ClearProjectID detaches the task from any explicit project, leaving the
// service default.
func (t *Task) ClearProjectID() {
	t.projectID = nil
}

// ID returns the service-assigned task identifier, if the task has been
// persisted.
func (t *Task) ID() (int64, bool) {
	if t.id == nil {
		return 0, false
	}
	return *t.id, true
}

// ProjectID returns the owning project identifier, if set.
func (t *Task) ProjectID() (int64, bool) {
	if t.projectID == nil {
		return 0, false
	}
	return *t.projectID, true
}

// Content returns the task description.
func (t *Task) Content() string { return t.content }

// Completed reports whether the task is completed.
func (t *Task) Completed() bool { return t.completed }

// LabelIDs returns the associated label identifiers in insertion order.
// The returned slice is a copy.
func (t *Task) LabelIDs() []int64 {
	ids := make([]int64, len(t.labelIDs))
	copy(ids, t.labelIDs)
	return ids
}

// Order returns the service-assigned position among sibling tasks, if
// known.
func (t *Task) Order() (int64, bool) {
	if t.order == nil {
		return 0, false
	}
	return *t.order, true
}

// Indent returns the service-assigned nesting depth (1 to 5), if known.
func (t *Task) Indent() (int, bool) {
	if t.indent == nil {
		return 0, false
	}
	return *t.indent, true
}

// Priority returns the task priority, 1 (normal) to 4 (urgent).
func (t *Task) Priority() int { return t.priority }

// Due returns a copy of the due information, if set.
func (t *Task) Due() (Due, bool) {
	if t.due == nil {
		return Due{}, false
	}
	return *t.due, true
}

// URL returns the service web link for the task, if known.
func (t *Task) URL() (string, bool) {
	if t.url == nil {
		return "", false
	}
	return *t.url, true
}

// CommentCount returns the number of comments on the task, if known.
func (t *Task) CommentCount() (int, bool) {
	if t.commentCount == nil {
		return 0, false
	}
	return *t.commentCount, true
}
