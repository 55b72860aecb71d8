// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/task-vault/internal/model"
)

// TaskQueueName is the broker queue all task events go through.
const TaskQueueName = "task.events"

// Event kinds published to the task.events queue.
const (
	TaskCreated   = "task.created"
	TaskCompleted = "task.completed"
)

// TaskEvent is published when a task is created or marked completed.
// It carries enough information for downstream consumers to log or
// notify without querying the task store.
type TaskEvent struct {
	Kind       string `json:"kind"`
	TaskID     int64  `json:"task_id"`
	UserID     int64  `json:"user_id"`
	Title      string `json:"title"`
	Priority   string `json:"priority"`
	OccurredAt string `json:"occurred_at"`
}

// NewTaskEvent builds the payload for a task and event kind.
func NewTaskEvent(kind string, t model.Task) TaskEvent {
	return TaskEvent{
		Kind:       kind,
		TaskID:     t.ID,
		UserID:     t.UserID,
		Title:      t.Title,
		Priority:   string(t.Priority),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
