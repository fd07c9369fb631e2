package models

import "time"

// Comment is written by any authenticated user on a trip, optionally on one
// of its images. Only the author (UserID) may change or remove it.
type Comment struct {
	ID          int64          `json:"id"`
	TripID      int64          `json:"trip_id"`
	UserID      int64          `json:"user_id"`
	ImageID     *int64         `json:"image_id"`
	CommentText string         `json:"comment_text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        *CommentAuthor `json:"user,omitempty"`
}

// CommentAuthor is the public part of the author's profile.
type CommentAuthor struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profile_image"`
}
