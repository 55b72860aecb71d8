package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken returns an opaque random token for a session. Two
// UUIDv4 values are concatenated so the token carries well over the
// 128 bits of entropy a single UUID nominally has after its fixed
// version/variant bits; nothing about it is derived from user data.
func NewSessionToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
