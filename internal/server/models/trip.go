package models

import "time"

type TripStatus string

const (
	TripPlanning  TripStatus = "planning"
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

// Trip is the top-level aggregate. UserID is the owner; it is set at
// creation from the authenticated principal and never changes.
type Trip struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	StartDate   Date       `json:"start_date"`
	EndDate     Date       `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Description *string    `json:"description"`
	Status      TripStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TripUpdate carries the optional fields of a trip change. Budget and
// Description can be cleared with an explicit null.
type TripUpdate struct {
	Name        *string
	Destination *string
	StartDate   *Date
	EndDate     *Date
	Budget      Nullable[float64]
	Description Nullable[string]
	Status      *TripStatus
}

// Apply copies the set fields of u onto t.
func (u TripUpdate) Apply(t *Trip) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Destination != nil {
		t.Destination = *u.Destination
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = *u.EndDate
	}
	if u.Budget.Set {
		t.Budget = u.Budget.Value
	}
	if u.Description.Set {
		t.Description = u.Description.Value
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
}

// Days is the trip length in whole days, rounded up.
func (t *Trip) Days() int {
	return t.StartDate.DaysUntil(t.EndDate)
}

// TripWithTotals is a trip as listed: expenses summed and length computed.
type TripWithTotals struct {
	Trip
	Expenses      []Expense `json:"expenses"`
	TotalExpenses float64   `json:"totalExpenses"`
	Days          int       `json:"days"`
}

// TripDetails is a single trip with all of its children.
type TripDetails struct {
	TripWithTotals
	Images        []Image        `json:"images"`
	ItineraryDays []ItineraryDay `json:"itinerary_days"`
}

// TripSummary is the budget overview of a trip.
type TripSummary struct {
	Trip               TripBrief          `json:"trip"`
	TotalExpenses      float64            `json:"totalExpenses"`
	RemainingBudget    *float64           `json:"remainingBudget"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	Days               int                `json:"days"`
	ExpenseCount       int                `json:"expenseCount"`
}

type TripBrief struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	StartDate   Date       `json:"start_date"`
	EndDate     Date       `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Status      TripStatus `json:"status"`
}
