// Package models defines server-side data models persisted in the database
// and the aggregate views returned by the services.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server: it is
// excluded from JSON and only read by the credential check at login.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"full_name"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate carries the optional fields of a profile change.
type ProfileUpdate struct {
	Username *string
	Email    *string
	FullName *string
}

// Principal is the authenticated caller, rebuilt from the users table on
// every request.
type Principal struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal returns the public identity of u.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}
