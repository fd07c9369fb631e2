package models

import "time"

// Image is a photo attached to a trip. StorageKey addresses the object in
// the configured object store; ImageURL is resolved from it when the image
// is returned to a caller.
type Image struct {
	ID         int64     `json:"id"`
	TripID     int64     `json:"trip_id"`
	UserID     int64     `json:"user_id"`
	StorageKey string    `json:"-"`
	ImageURL   string    `json:"image_url"`
	Caption    *string   `json:"caption"`
	UploadDate time.Time `json:"upload_date"`
}
