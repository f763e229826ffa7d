package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/twdoist/twdoist/pkg/model"
	"github.com/twdoist/twdoist/pkg/taskwarrior"
	"github.com/twdoist/twdoist/pkg/todoist"
)

const overdueMarker = "! "

// PriorityNumber maps a source priority letter to the service scale.
// Taskwarrior uses H/M/L, org files use A/B/C; both collapse to
// 4/3/2, and anything else is normal priority.
func PriorityNumber(letter string) int {
	switch letter {
	case "H", "A":
		return todoist.PriorityUrgent
	case "M", "B":
		return 3
	case "L", "C":
		return 2
	default:
		return todoist.PriorityNormal
	}
}

// DueFromTime maps a local due instant to due information for the remote
// side. A zero time means no due date. allDay forces the whole-day form;
// an instant at exactly midnight UTC is also treated as a whole day,
// since that is how Taskwarrior stores date-only input. Everything else
// becomes an exact UTC datetime.
func DueFromTime(t time.Time, allDay bool) *todoist.Due {
	if t.IsZero() {
		return nil
	}
	due := todoist.NewDue("")
	utc := t.UTC()
	if allDay {
		due.SetDate(t.Format("2006-01-02"))
		return &due
	}
	if utc.Hour() == 0 && utc.Minute() == 0 && utc.Second() == 0 && utc.Nanosecond() == 0 {
		due.SetDate(utc.Format("2006-01-02"))
		return &due
	}
	due.SetDatetime(utc.Format(time.RFC3339))
	return &due
}

// FromTaskwarrior builds the writable remote task for a Taskwarrior task.
// Project and labels are left unset; the syncer attaches them once their
// remote IDs exist.
func FromTaskwarrior(t *taskwarrior.Task) (*todoist.Task, error) {
	if t == nil {
		return nil, fmt.Errorf("could not convert nil task")
	}

	task := todoist.NewTask(t.Description)
	if err := task.SetPriority(PriorityNumber(t.Priority)); err != nil {
		return nil, err
	}
	task.SetCompleted(t.Status == taskwarrior.COMPLETED)
	if t.Due != nil {
		task.SetDue(DueFromTime(t.Due.Time, false))
	}
	return task, nil
}

// FromOrg builds the writable remote task for a parsed org entry.
func FromOrg(t *model.Task) (*todoist.Task, error) {
	if t == nil {
		return nil, fmt.Errorf("could not convert nil task")
	}

	task := todoist.NewTask(t.Description)
	if err := task.SetPriority(PriorityNumber(t.Priority)); err != nil {
		return nil, err
	}
	task.SetCompleted(t.Status == "completed")
	task.SetDue(DueFromTime(t.Deadline, t.AllDay))
	return task, nil
}

// dueKey reduces due information to the form the write schema would send,
// so two tasks compare equal exactly when an update would be a no-op.
func dueKey(d todoist.Due) string {
	if dt, ok := d.Datetime(); ok {
		return "datetime:" + dt
	}
	if date, ok := d.Date(); ok {
		return "date:" + date
	}
	return "string:" + d.String()
}

// NeedsUpdate reports whether the remote record differs from the local
// rendition in any writable field.
func NeedsUpdate(local, remote *todoist.Task) bool {
	if local.Content() != remote.Content() {
		return true
	}
	if local.Priority() != remote.Priority() {
		return true
	}

	lp, lok := local.ProjectID()
	rp, rok := remote.ProjectID()
	if lok != rok || lp != rp {
		return true
	}

	llabels := local.LabelIDs()
	rlabels := remote.LabelIDs()
	if len(llabels) != len(rlabels) {
		return true
	}
	for i := range llabels {
		if llabels[i] != rlabels[i] {
			return true
		}
	}

	ldue, lok := local.Due()
	rdue, rok := remote.Due()
	if lok != rok {
		return true
	}
	if lok && dueKey(ldue) != dueKey(rdue) {
		return true
	}
	return false
}

// OverdueContent prefixes content with the overdue marker. Already marked
// content passes through unchanged so repeated sweeps cannot stack
// markers.
func OverdueContent(content string) string {
	if strings.HasPrefix(content, overdueMarker) {
		return content
	}
	return overdueMarker + content
}
