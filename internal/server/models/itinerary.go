package models

import "time"

// ItineraryDay is one planned day of a trip.
type ItineraryDay struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	DayNumber   int       `json:"day_number"`
	Date        Date      `json:"date"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ItineraryDayUpdate struct {
	DayNumber   *int
	Date        *Date
	Title       *string
	Description *string
}

func (u ItineraryDayUpdate) Apply(d *ItineraryDay) {
	if u.DayNumber != nil {
		d.DayNumber = *u.DayNumber
	}
	if u.Date != nil {
		d.Date = *u.Date
	}
	if u.Title != nil {
		d.Title = u.Title
	}
	if u.Description != nil {
		d.Description = u.Description
	}
}
