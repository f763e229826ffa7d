package model

import "time"

// Task represents a generic task from any source.
type Task struct {
	ID          string
	Description string
	Deadline    time.Time
	// AllDay is true when the deadline names a day without a time of
	// day, which maps to a whole-day due date on the remote side.
	AllDay      bool
	Tags        []string
	Priority    string
	Status      string
	Source      string // file the task was parsed from
	Project     string
	Annotations []string
}
