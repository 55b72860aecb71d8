package repository

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/task-vault/internal/model"
	"github.com/iliyamo/task-vault/internal/store"
)

// Filter selects which of a user's tasks List returns.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ValidFilter reports whether f is a known filter value. The empty
// string is not valid here — handlers default it to FilterAll before
// calling in.
func ValidFilter(f Filter) bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// TaskPatch carries the optional fields of an update. A nil field is
// left untouched; only what the caller actually sent gets changed.
type TaskPatch struct {
	Title     *string
	Completed *bool
	Priority  *model.Priority
}

// TaskRepo owns the `tasks` collection. Every operation takes the
// caller's user id and only ever observes or mutates tasks whose
// UserID matches it. Existence and ownership are checked as one
// predicate so a foreign task id behaves exactly like a missing one.
type TaskRepo struct {
	tasks store.Collection[model.Task]
}

func NewTaskRepo(tasks store.Collection[model.Task]) *TaskRepo {
	return &TaskRepo{tasks: tasks}
}

// List returns the caller's tasks in the order the store yields them.
// FilterActive keeps tasks with Completed=false, FilterCompleted the
// complement, FilterAll everything.
func (r *TaskRepo) List(ctx context.Context, uid int64, filter Filter) ([]model.Task, error) {
	tasks, err := r.tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.UserID != uid {
			continue
		}
		switch filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// Create appends a new task for uid. The id is assigned inside the
// collection lock, so concurrent creates cannot mint the same id or
// overwrite each other's save. Priority defaults to medium; the title
// is stored trimmed. Both must already have passed validation.
func (r *TaskRepo) Create(ctx context.Context, uid int64, title string, priority model.Priority) (model.Task, error) {
	if priority == "" {
		priority = model.PriorityMedium
	}

	var created model.Task
	err := r.tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		created = model.Task{
			ID:        store.NextID(tasks),
			UserID:    uid,
			Title:     strings.TrimSpace(title),
			Completed: false,
			Priority:  priority,
			CreatedAt: time.Now().UTC(),
		}
		return append(tasks, created), nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// Update applies patch to the task with the given id owned by uid and
// returns the updated record. ErrTaskNotFound covers both "no such id"
// and "someone else's task".
func (r *TaskRepo) Update(ctx context.Context, uid, id int64, patch TaskPatch) (model.Task, error) {
	var updated model.Task
	err := r.tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		for i, t := range tasks {
			if t.ID != id || t.UserID != uid {
				continue
			}
			if patch.Title != nil {
				t.Title = strings.TrimSpace(*patch.Title)
			}
			if patch.Completed != nil {
				t.Completed = *patch.Completed
			}
			if patch.Priority != nil {
				t.Priority = *patch.Priority
			}
			tasks[i] = t
			updated = t
			return tasks, nil
		}
		return nil, ErrTaskNotFound
	})
	if err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

// Delete removes the task with the given id owned by uid and returns
// the removed record. Same not-found semantics as Update.
func (r *TaskRepo) Delete(ctx context.Context, uid, id int64) (model.Task, error) {
	var removed model.Task
	err := r.tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		for i, t := range tasks {
			if t.ID != id || t.UserID != uid {
				continue
			}
			removed = t
			return append(tasks[:i], tasks[i+1:]...), nil
		}
		return nil, ErrTaskNotFound
	})
	if err != nil {
		return model.Task{}, err
	}
	return removed, nil
}
