package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/services"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
)

const (
	maxJSONBytes      = 1 << 20
	multipartMemory   = 1 << 20
	multipartOverhead = 1 << 20

	msgImagesOnly = "Only image files are allowed"
)

var errNotMultipart = errors.New("not a multipart request")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// bind decodes the JSON body into dst and validates it.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	return s.validator.Struct(dst)
}

// decodeJSON reads the body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return common.NewValidationError(te.Field, fmt.Sprintf("%q must be a %s", te.Field, te.Type.Kind()))
	}
	return common.BadRequest(msgBadBody)
}

func pathID(r *http.Request, name, notFound string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NotFound(notFound)
	}
	return id, nil
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// parseMultipart reads a multipart body of at most MaxUploadBytes plus room
// for the text fields. Callers must RemoveAll the form when done.
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	if !isMultipart(r) {
		return errNotMultipart
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return common.BadRequest(s.tooLargeMessage())
		}
		return common.BadRequest(msgBadBody)
	}
	return nil
}

// formFile returns the named file part of a parsed multipart form, or nil
// if there is none. The returned Upload must be closed by the caller.
func (s *Server) formFile(r *http.Request, field string) (*services.Upload, io.Closer, error) {
	f, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, common.BadRequest(msgBadBody)
	}
	if fh.Size > s.opts.MaxUploadBytes {
		f.Close()
		return nil, nil, common.BadRequest(s.tooLargeMessage())
	}
	declared, _, _ := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if !allowedImageTypes[declared] {
		f.Close()
		return nil, nil, common.BadRequest(msgImagesOnly)
	}
	ct, err := sniffImageType(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return &services.Upload{ContentType: ct, Size: fh.Size, Body: f}, f, nil
}

// sniffImageType detects the type of body from its content and rewinds it.
// The declared part type is not trusted for what gets stored or served.
func sniffImageType(body io.ReadSeeker) (string, error) {
	m, err := mimetype.DetectReader(body)
	if err != nil {
		return "", common.BadRequest(msgBadBody)
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	ct, _, _ := mime.ParseMediaType(m.String())
	if !allowedImageTypes[ct] {
		return "", common.BadRequest(msgImagesOnly)
	}
	return ct, nil
}

func (s *Server) tooLargeMessage() string {
	return fmt.Sprintf("File too large. Maximum size is %dMB.", s.opts.MaxUploadBytes>>20)
}

// formString returns the first value of key, or nil when absent or empty.
func formString(values map[string][]string, key string) *string {
	if v := values[key]; len(v) > 0 && v[0] != "" {
		return &v[0]
	}
	return nil
}

func parseDatePtr(s *string) (*models.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := models.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type registerRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6,maxbytes=72"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
}

type createTripRequest struct {
	Name        *string  `json:"name" validate:"required,min=3,max=100"`
	Destination *string  `json:"destination" validate:"required,min=2,max=100"`
	StartDate   *string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Budget      *float64 `json:"budget" validate:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=planning ongoing completed"`
}

func (req createTripRequest) trip() (models.Trip, error) {
	start, err := models.ParseDate(*req.StartDate)
	if err != nil {
		return models.Trip{}, err
	}
	end, err := models.ParseDate(*req.EndDate)
	if err != nil {
		return models.Trip{}, err
	}
	t := models.Trip{
		Name:        *req.Name,
		Destination: *req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Description: req.Description,
	}
	if req.Status != nil {
		t.Status = models.TripStatus(*req.Status)
	}
	return t, nil
}

type updateTripRequest struct {
	Name        *string                  `json:"name" validate:"omitempty,min=3,max=100"`
	Destination *string                  `json:"destination" validate:"omitempty,min=2,max=100"`
	StartDate   *string                  `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string                  `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Budget      models.Nullable[float64] `json:"budget" validate:"omitempty,gt=0"`
	Description models.Nullable[string]  `json:"description"`
	Status      *string                  `json:"status" validate:"omitempty,oneof=planning ongoing completed"`
}

func (req updateTripRequest) update() (models.TripUpdate, error) {
	start, err := parseDatePtr(req.StartDate)
	if err != nil {
		return models.TripUpdate{}, err
	}
	end, err := parseDatePtr(req.EndDate)
	if err != nil {
		return models.TripUpdate{}, err
	}
	upd := models.TripUpdate{
		Name:        req.Name,
		Destination: req.Destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Description: req.Description,
	}
	if req.Status != nil {
		st := models.TripStatus(*req.Status)
		upd.Status = &st
	}
	return upd, nil
}

type createExpenseRequest struct {
	Amount      *float64 `json:"amount" validate:"required,gt=0"`
	Category    *string  `json:"category" validate:"required,oneof=Food Transport Accommodation Activities Shopping Other"`
	Date        *string  `json:"date" validate:"required,datetime=2006-01-02"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
}

// fromForm fills req from multipart text fields.
func (req *createExpenseRequest) fromForm(values map[string][]string) error {
	if v := formString(values, "amount"); v != nil {
		amount, err := strconv.ParseFloat(*v, 64)
		if err != nil {
			return common.NewValidationError("amount", "Amount must be a positive number")
		}
		req.Amount = &amount
	}
	req.Category = formString(values, "category")
	req.Date = formString(values, "date")
	req.Description = formString(values, "description")
	return nil
}

func (req createExpenseRequest) expense() (models.Expense, error) {
	d, err := models.ParseDate(*req.Date)
	if err != nil {
		return models.Expense{}, err
	}
	return models.Expense{
		Amount:      *req.Amount,
		Category:    models.ExpenseCategory(*req.Category),
		Date:        d,
		Description: req.Description,
	}, nil
}

type updateExpenseRequest struct {
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,oneof=Food Transport Accommodation Activities Shopping Other"`
	Date        *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
}

func (req updateExpenseRequest) update() (models.ExpenseUpdate, error) {
	d, err := parseDatePtr(req.Date)
	if err != nil {
		return models.ExpenseUpdate{}, err
	}
	upd := models.ExpenseUpdate{Amount: req.Amount, Date: d, Description: req.Description}
	if req.Category != nil {
		c := models.ExpenseCategory(*req.Category)
		upd.Category = &c
	}
	return upd, nil
}

type createItineraryDayRequest struct {
	DayNumber   *int    `json:"day_number" validate:"required,min=1"`
	Date        *string `json:"date" validate:"required,datetime=2006-01-02"`
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

func (req createItineraryDayRequest) day() (models.ItineraryDay, error) {
	d, err := models.ParseDate(*req.Date)
	if err != nil {
		return models.ItineraryDay{}, err
	}
	return models.ItineraryDay{
		DayNumber:   *req.DayNumber,
		Date:        d,
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

type updateItineraryDayRequest struct {
	DayNumber   *int    `json:"day_number" validate:"omitempty,min=1"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

func (req updateItineraryDayRequest) update() (models.ItineraryDayUpdate, error) {
	d, err := parseDatePtr(req.Date)
	if err != nil {
		return models.ItineraryDayUpdate{}, err
	}
	return models.ItineraryDayUpdate{
		DayNumber:   req.DayNumber,
		Date:        d,
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

type captionRequest struct {
	Caption *string `json:"caption" validate:"omitempty,max=255"`
}

type commentRequest struct {
	CommentText string `json:"comment_text" validate:"required"`
}
