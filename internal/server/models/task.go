package models

import "time"

// Task priorities. Anything outside this set is coerced to PriorityLow
// when a task is created.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// ValidPriority reports whether p is one of the three allowed values.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a single unit of work owned by exactly one user. UserID is set at
// creation and never reassigned.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Priority    string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries the allow-listed updatable fields of a task. A nil field
// means "leave unchanged". Owner and ID are deliberately absent so a patch
// can never reassign them.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Completed   *bool
}
