package todoist

import (
	"errors"
	"testing"
)

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("Buy milk")

	if task.Content() != "Buy milk" {
		t.Errorf("Expected content 'Buy milk', got '%s'", task.Content())
	}
	if task.Priority() != PriorityNormal {
		t.Errorf("Expected priority %d, got %d", PriorityNormal, task.Priority())
	}
	if task.Completed() {
		t.Error("Expected a new task to not be completed")
	}
	if len(task.LabelIDs()) != 0 {
		t.Errorf("Expected no labels, got %v", task.LabelIDs())
	}
	if _, ok := task.ID(); ok {
		t.Error("Expected ID to be unset on a new task")
	}
	if _, ok := task.ProjectID(); ok {
		t.Error("Expected project ID to be unset on a new task")
	}
	if _, ok := task.Order(); ok {
		t.Error("Expected order to be unset on a new task")
	}
	if _, ok := task.Indent(); ok {
		t.Error("Expected indent to be unset on a new task")
	}
	if _, ok := task.Due(); ok {
		t.Error("Expected due to be unset on a new task")
	}
	if _, ok := task.URL(); ok {
		t.Error("Expected URL to be unset on a new task")
	}
	if _, ok := task.CommentCount(); ok {
		t.Error("Expected comment count to be unset on a new task")
	}
}

func TestAddLabelIDKeepsOrder(t *testing.T) {
	task := NewTask("Buy milk")
	task.AddLabelID(10)
	task.AddLabelID(4)
	task.AddLabelID(1)

	got := task.LabelIDs()
	want := []int64{10, 4, 1}
	if len(got) != len(want) {
		t.Fatalf("Expected %d labels, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected label %d at position %d, got %d", want[i], i, got[i])
		}
	}
}

func TestRemoveLabelIDRemovesAllOccurrences(t *testing.T) {
	task := NewTask("Buy milk")
	task.AddLabelID(10)
	task.AddLabelID(4)
	task.AddLabelID(1)
	task.AddLabelID(4)

	task.RemoveLabelID(4)

	got := task.LabelIDs()
	want := []int64{10, 1}
	if len(got) != len(want) {
		t.Fatalf("Expected labels %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected label %d at position %d, got %d", want[i], i, got[i])
		}
	}
}

func TestLabelIDsReturnsCopy(t *testing.T) {
	task := NewTask("Buy milk")
	task.AddLabelID(10)

	ids := task.LabelIDs()
	ids[0] = 99

	if task.LabelIDs()[0] != 10 {
		t.Errorf("Expected task labels to be unaffected, got %v", task.LabelIDs())
	}
}

func TestSetPriority(t *testing.T) {
	task := NewTask("Buy milk")

	for p := PriorityNormal; p <= PriorityUrgent; p++ {
		if err := task.SetPriority(p); err != nil {
			t.Errorf("Expected priority %d to be accepted, got %v", p, err)
		}
		if task.Priority() != p {
			t.Errorf("Expected priority %d, got %d", p, task.Priority())
		}
	}
}

func TestSetPriorityOutOfRange(t *testing.T) {
	task := NewTask("Buy milk")
	if err := task.SetPriority(3); err != nil {
		t.Fatalf("SetPriority failed: %v", err)
	}

	for _, p := range []int{0, 5, -1, 100} {
		err := task.SetPriority(p)
		if err == nil {
			t.Fatalf("Expected priority %d to be rejected", p)
		}
		if !errors.Is(err, ErrInvalidPriority) {
			t.Errorf("Expected ErrInvalidPriority for %d, got %v", p, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Expected a ValidationError for %d, got %T", p, err)
		}
		if verr.Field != "priority" {
			t.Errorf("Expected field 'priority', got '%s'", verr.Field)
		}
	}

	if task.Priority() != 3 {
		t.Errorf("Expected priority to stay 3 after rejected updates, got %d", task.Priority())
	}
}

func TestDueCreate(t *testing.T) {
	due := NewDue("tomorrow at noon")

	if due.String() != "tomorrow at noon" {
		t.Errorf("Expected string 'tomorrow at noon', got '%s'", due.String())
	}
	if _, ok := due.Date(); ok {
		t.Error("Expected date to be unset")
	}
	if _, ok := due.Datetime(); ok {
		t.Error("Expected datetime to be unset")
	}
	if _, ok := due.Timezone(); ok {
		t.Error("Expected timezone to be unset")
	}
}

func TestDueSetDateMirrorsString(t *testing.T) {
	due := NewDue("tomorrow at noon")
	due.SetDate("2017-12-25")

	if due.String() != "2017-12-25" {
		t.Errorf("Expected string '2017-12-25', got '%s'", due.String())
	}
	if date, ok := due.Date(); !ok || date != "2017-12-25" {
		t.Errorf("Expected date '2017-12-25', got '%s' (set=%v)", date, ok)
	}
	if _, ok := due.Datetime(); ok {
		t.Error("Expected datetime to be unset after SetDate")
	}
}

func TestDueSetDatetimeMirrorsString(t *testing.T) {
	due := NewDue("tomorrow at noon")
	due.SetDate("2017-12-25")
	due.SetDatetime("2017-12-25T09:00:00Z")

	if due.String() != "2017-12-25T09:00:00Z" {
		t.Errorf("Expected string '2017-12-25T09:00:00Z', got '%s'", due.String())
	}
	if dt, ok := due.Datetime(); !ok || dt != "2017-12-25T09:00:00Z" {
		t.Errorf("Expected datetime '2017-12-25T09:00:00Z', got '%s' (set=%v)", dt, ok)
	}
	if _, ok := due.Date(); ok {
		t.Error("Expected date to be cleared by SetDatetime")
	}
}

func TestDueSetStringClearsStructuredForms(t *testing.T) {
	due := NewDue("tomorrow")
	due.SetDatetime("2017-12-25T09:00:00Z")
	due.SetString("next friday")

	if due.String() != "next friday" {
		t.Errorf("Expected string 'next friday', got '%s'", due.String())
	}
	if _, ok := due.Date(); ok {
		t.Error("Expected date to be cleared by SetString")
	}
	if _, ok := due.Datetime(); ok {
		t.Error("Expected datetime to be cleared by SetString")
	}
}

func TestSetDueStoresCopy(t *testing.T) {
	task := NewTask("Buy milk")
	due := NewDue("tomorrow")
	task.SetDue(&due)

	due.SetDate("2017-12-25")

	got, ok := task.Due()
	if !ok {
		t.Fatal("Expected due to be set")
	}
	if got.String() != "tomorrow" {
		t.Errorf("Expected task due to be unaffected by later mutation, got '%s'", got.String())
	}
}

func TestSetDueNilClears(t *testing.T) {
	task := NewTask("Buy milk")
	due := NewDue("tomorrow")
	task.SetDue(&due)
	task.SetDue(nil)

	if _, ok := task.Due(); ok {
		t.Error("Expected due to be cleared")
	}
}

func TestSetProjectID(t *testing.T) {
	task := NewTask("Buy milk")
	task.SetProjectID(2345)

	if id, ok := task.ProjectID(); !ok || id != 2345 {
		t.Errorf("Expected project ID 2345, got %d (set=%v)", id, ok)
	}

	task.ClearProjectID()
	if _, ok := task.ProjectID(); ok {
		t.Error("Expected project ID to be cleared")
	}
}
