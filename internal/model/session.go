package model

import "time"

// Session is the server-side proof of a completed login. It is held
// in its own store (memory or Redis), never alongside users or tasks.
// The token is opaque and random; the client carries it in a cookie.
// A session only references its user by id — if that user is later
// missing, the session is simply treated as invalid.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session's fixed time-to-live has passed.
// There is no sliding window; expiry is measured from creation only.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
