package model

import "time"

// User represents a registered account as stored in the `users`
// collection. The json tags describe the on-disk record layout; the
// password itself is never stored, only its bcrypt digest. Handlers
// must not serialize this struct directly in responses — they build
// sanitized views that omit PasswordHash.
//
// Fields:
//  ID           – positive identifier assigned by the store (max existing + 1).
//  FullName     – display name, 3–50 characters after trimming.
//  Email        – unique address, normalized to lower case at registration.
//  PasswordHash – bcrypt digest of the password.
//  CreatedAt    – timestamp of registration.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecordID implements store.Identifiable so the users collection can
// assign fresh ids.
func (u User) RecordID() int64 { return u.ID }
