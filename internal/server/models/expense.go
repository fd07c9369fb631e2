package models

import "time"

type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "Food"
	CategoryTransport     ExpenseCategory = "Transport"
	CategoryAccommodation ExpenseCategory = "Accommodation"
	CategoryActivities    ExpenseCategory = "Activities"
	CategoryShopping      ExpenseCategory = "Shopping"
	CategoryOther         ExpenseCategory = "Other"
)

// Expense belongs to a trip; its owner is the trip's owner.
type Expense struct {
	ID           int64           `json:"id"`
	TripID       int64           `json:"trip_id"`
	Amount       float64         `json:"amount"`
	Category     ExpenseCategory `json:"category"`
	Date         Date            `json:"date"`
	Description  *string         `json:"description"`
	ReceiptImage *string         `json:"receipt_image"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ExpenseUpdate struct {
	Amount      *float64
	Category    *ExpenseCategory
	Date        *Date
	Description *string
}

func (u ExpenseUpdate) Apply(e *Expense) {
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	if u.Description != nil {
		e.Description = u.Description
	}
}

// CategoryGroup is one bucket of the expenses-by-category view.
type CategoryGroup struct {
	Category ExpenseCategory `json:"category"`
	Total    float64         `json:"total"`
	Count    int             `json:"count"`
	Expenses []Expense       `json:"expenses"`
}
