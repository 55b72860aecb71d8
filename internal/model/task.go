package model

import "time"

// Priority is the importance level of a task. Only the three values
// below are accepted by the API; anything else is a validation error.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the accepted enum values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item in the `tasks` collection. Every task
// belongs to exactly one user; UserID is set at creation and never
// reassigned afterwards.
//
// Fields:
//  ID        – identifier unique within the tasks collection.
//  UserID    – owner of the task (references User.ID).
//  Title     – short description, 1–100 characters after trimming.
//  Completed – whether the task is done. New tasks start as false.
//  Priority  – low, medium or high. Defaults to medium when omitted.
//  CreatedAt – timestamp of creation.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordID implements store.Identifiable.
func (t Task) RecordID() int64 { return t.ID }
