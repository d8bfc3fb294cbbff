// Package models defines the client-side entities of the blog: profiles,
// posts, their images and comments, plus the inputs accepted by the pipeline.
package models

import "time"

// User is a profile row keyed by the auth identity that owns it.
type User struct {
	// UserID is the auth identity id (foreign key to the identity store).
	UserID string `json:"user_id"`

	// Name is the display name shown next to posts and comments.
	Name string `json:"name"`

	// Email is informational only; lookups always go through UserID.
	Email string `json:"email"`

	// Image is an optional inline-encoded avatar (data URL).
	Image string `json:"image,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// PendingRegistration is the name/email pair stashed in durable local storage
// while a registration round-trip (e.g. email confirmation) is in flight.
type PendingRegistration struct {
	Name  string
	Email string
}
