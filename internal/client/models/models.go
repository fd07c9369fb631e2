// Package models holds the API payloads the CLI reads and writes. Dates are
// kept as the "YYYY-MM-DD" strings the server sends.
package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name"`
	ProfileImage *string   `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

type Trip struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Destination   string    `json:"destination"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Budget        *float64  `json:"budget"`
	Description   *string   `json:"description"`
	Status        string    `json:"status"`
	TotalExpenses float64   `json:"totalExpenses"`
	Days          int       `json:"days"`
	Expenses      []Expense `json:"expenses,omitempty"`
	Images        []Image   `json:"images,omitempty"`
}

type TripSummary struct {
	TotalExpenses      float64            `json:"totalExpenses"`
	RemainingBudget    *float64           `json:"remainingBudget"`
	ExpensesByCategory map[string]float64 `json:"expensesByCategory"`
	Days               int                `json:"days"`
	ExpenseCount       int                `json:"expenseCount"`
}

type Expense struct {
	ID           int64   `json:"id"`
	TripID       int64   `json:"trip_id"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	Description  *string `json:"description"`
	ReceiptImage *string `json:"receipt_image"`
}

type Image struct {
	ID       int64   `json:"id"`
	TripID   int64   `json:"trip_id"`
	ImageURL string  `json:"image_url"`
	Caption  *string `json:"caption"`
}

type Comment struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	ImageID     *int64    `json:"image_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	User        *struct {
		Username string `json:"username"`
	} `json:"user,omitempty"`
}

// TripInput is the body of a trip creation.
type TripInput struct {
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Budget      *float64 `json:"budget,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// ExpenseInput is the body of an expense creation.
type ExpenseInput struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Description *string `json:"description,omitempty"`
}
