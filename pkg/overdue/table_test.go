package overdue

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	return &Table{
		Path:    filepath.Join(t.TempDir(), "pending_tasks.json"),
		Entries: make(map[string]Entry),
	}
}

func TestUpdateAndRemove(t *testing.T) {
	table := newTestTable(t)
	due := time.Date(2023, 1, 5, 15, 0, 0, 0, time.UTC)

	table.Update("aaaa", 1234, "Buy milk", due)
	entry, ok := table.Entries["aaaa"]
	if !ok {
		t.Fatal("Expected an entry for aaaa")
	}
	if entry.TaskID != 1234 || entry.Content != "Buy milk" {
		t.Errorf("Expected entry {1234 Buy milk}, got %+v", entry)
	}

	// A zero due drops the entry.
	table.Update("aaaa", 1234, "Buy milk", time.Time{})
	if _, ok := table.Entries["aaaa"]; ok {
		t.Error("Expected the entry to be removed when due is cleared")
	}
}

func TestSweep(t *testing.T) {
	table := newTestTable(t)
	now := time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC)

	table.Update("past", 1, "Old task", now.Add(-time.Hour))
	table.Update("future", 2, "Upcoming task", now.Add(time.Hour))

	swept := table.Sweep(now)
	if len(swept) != 1 {
		t.Fatalf("Expected 1 swept entry, got %d", len(swept))
	}
	if swept[0].TaskID != 1 {
		t.Errorf("Expected swept task 1, got %d", swept[0].TaskID)
	}
	if _, ok := table.Entries["past"]; ok {
		t.Error("Expected the swept entry to be removed")
	}
	if _, ok := table.Entries["future"]; !ok {
		t.Error("Expected the future entry to stay")
	}
}

func TestSaveAndLoad(t *testing.T) {
	table := newTestTable(t)
	due := time.Date(2023, 1, 5, 15, 0, 0, 0, time.UTC)
	table.Update("aaaa", 1234, "Buy milk", due)

	if err := table.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := &Table{Path: table.Path, Entries: make(map[string]Entry)}
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entry, ok := loaded.Entries["aaaa"]
	if !ok {
		t.Fatal("Expected the loaded table to contain aaaa")
	}
	if entry.TaskID != 1234 || !entry.Due.Equal(due) {
		t.Errorf("Expected entry {1234 %v}, got %+v", due, entry)
	}
}
