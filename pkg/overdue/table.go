package overdue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry records a pending task's remote ID and due instant so a later run
// can notice the deadline passed.
type Entry struct {
	TaskID  int64     `json:"task_id"`
	Content string    `json:"content"`
	Due     time.Time `json:"due"`
}

type Table struct {
	Entries map[string]Entry `json:"entries"`
	Path    string           `json:"-"`
	dirty   bool
}

func NewTable() (*Table, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", "twdoist", "pending_tasks.json")

	t := &Table{
		Path:    path,
		Entries: make(map[string]Entry),
	}

	if _, err := os.Stat(path); err == nil {
		if err := t.Load(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) Load() error {
	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(t)
}

func (t *Table) Save() error {
	if !t.dirty {
		return nil
	}
	dir := filepath.Dir(t.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(t)
	if err == nil {
		t.dirty = false
	}
	return err
}

// Update adds or refreshes a task's entry when it has a due instant; a
// task without one is dropped from the table.
func (t *Table) Update(uuid string, taskID int64, content string, due time.Time) {
	if !due.IsZero() {
		old, exists := t.Entries[uuid]
		if !exists || !old.Due.Equal(due) || old.TaskID != taskID || old.Content != content {
			t.Entries[uuid] = Entry{
				TaskID:  taskID,
				Content: content,
				Due:     due,
			}
			t.dirty = true
		}
	} else {
		t.Remove(uuid)
	}
}

func (t *Table) Remove(uuid string) {
	if _, exists := t.Entries[uuid]; exists {
		delete(t.Entries, uuid)
		t.dirty = true
	}
}

// Sweep returns entries whose due instant passed (Due < now) and removes
// them from the table.
func (t *Table) Sweep(now time.Time) []Entry {
	var swept []Entry
	for uuid, entry := range t.Entries {
		if entry.Due.Before(now) {
			swept = append(swept, entry)
			delete(t.Entries, uuid)
			t.dirty = true
		}
	}
	return swept
}
