// Package repository defines sentinel errors shared by the user and
// task repositories. Handlers compare against these values to pick the
// HTTP status for a failure; anything else is treated as an internal
// error.
package repository

import "errors"

// ErrEmailExists is returned when registration finds another user with
// the same (case-insensitively compared) email address. Handlers
// report it as a field violation, not a 500.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches the given email or
// id.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when a task id does not exist in the
// collection OR exists but belongs to another user. The two cases are
// intentionally indistinguishable so a caller can never probe whether
// somebody else's task id is real. Handlers translate it into a 404.
var ErrTaskNotFound = errors.New("task not found")
