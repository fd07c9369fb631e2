package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/travelmate/internal/client/models"
	"github.com/dmitrijs2005/travelmate/internal/netx"
)

// LoginResult is the data of a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type registerRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func tripPath(id int64) string {
	return "/api/trips/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) Register(ctx context.Context, username, email string, password []byte, fullName *string) (*models.User, error) {
	var u models.User
	req := registerRequest{Username: username, Email: email, Password: string(password), FullName: fullName}
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	var res LoginResult
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: string(password)}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Ping calls the REST health endpoint and returns its message.
func (c *HTTPClient) Ping(ctx context.Context) (string, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *HTTPClient) ListTrips(ctx context.Context) ([]models.Trip, error) {
	var trips []models.Trip
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/trips", nil, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *HTTPClient) GetTrip(ctx context.Context, id int64) (*models.Trip, error) {
	var t models.Trip
	if _, err := c.doJSON(ctx, http.MethodGet, tripPath(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) CreateTrip(ctx context.Context, in models.TripInput) (*models.Trip, error) {
	var t models.Trip
	if _, err := c.doJSON(ctx, http.MethodPost, "/api/trips", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) DeleteTrip(ctx context.Context, id int64) error {
	_, err := c.doJSON(ctx, http.MethodDelete, tripPath(id), nil, nil)
	return err
}

func (c *HTTPClient) TripSummary(ctx context.Context, id int64) (*models.TripSummary, error) {
	var s models.TripSummary
	if _, err := c.doJSON(ctx, http.MethodGet, tripPath(id)+"/summary", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) ListExpenses(ctx context.Context, tripID int64) ([]models.Expense, error) {
	var ex []models.Expense
	if _, err := c.doJSON(ctx, http.MethodGet, tripPath(tripID)+"/expenses", nil, &ex); err != nil {
		return nil, err
	}
	return ex, nil
}

// AddExpense creates an expense. With a receipt the request is sent as
// multipart/form-data, otherwise as JSON.
func (c *HTTPClient) AddExpense(ctx context.Context, tripID int64, in models.ExpenseInput, receipt *netx.FilePart) (*models.Expense, error) {
	var e models.Expense
	path := tripPath(tripID) + "/expenses"

	if receipt == nil {
		if _, err := c.doJSON(ctx, http.MethodPost, path, in, &e); err != nil {
			return nil, err
		}
		return &e, nil
	}

	fields := map[string]string{
		"amount":   strconv.FormatFloat(in.Amount, 'f', -1, 64),
		"category": in.Category,
		"date":     in.Date,
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	receipt.Field = "receipt"

	body, ct, err := netx.MultipartBody(fields, receipt)
	if err != nil {
		return nil, fmt.Errorf("build receipt upload: %w", err)
	}
	if _, err := c.do(ctx, http.MethodPost, path, body, ct, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) UploadImage(ctx context.Context, tripID int64, file netx.FilePart, caption *string) (*models.Image, error) {
	fields := map[string]string{}
	if caption != nil {
		fields["caption"] = *caption
	}
	file.Field = "image"

	body, ct, err := netx.MultipartBody(fields, &file)
	if err != nil {
		return nil, fmt.Errorf("build image upload: %w", err)
	}

	var img models.Image
	if _, err := c.do(ctx, http.MethodPost, tripPath(tripID)+"/images", body, ct, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

func (c *HTTPClient) ListImages(ctx context.Context, tripID int64) ([]models.Image, error) {
	var imgs []models.Image
	if _, err := c.doJSON(ctx, http.MethodGet, tripPath(tripID)+"/images", nil, &imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}

func (c *HTTPClient) ListTripComments(ctx context.Context, tripID int64) ([]models.Comment, error) {
	var cs []models.Comment
	path := "/api/comments/trips/" + strconv.FormatInt(tripID, 10) + "/comments"
	if _, err := c.doJSON(ctx, http.MethodGet, path, nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (c *HTTPClient) AddTripComment(ctx context.Context, tripID int64, text string) (*models.Comment, error) {
	var cm models.Comment
	path := "/api/comments/trips/" + strconv.FormatInt(tripID, 10) + "/comments"
	if _, err := c.doJSON(ctx, http.MethodPost, path, map[string]string{"comment_text": text}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}
