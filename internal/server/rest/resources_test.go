package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenses_CRUDAndCategories(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/expenses", api.createTrip(alice, "Tokyo"))

	rec, env := api.do(http.MethodPost, base, alice, map[string]any{
		"amount": 40, "category": "Transport", "date": "2025-04-03", "description": "JR pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Expense added successfully", env.Message)
	id := dataID(t, env)

	rec, _ = api.do(http.MethodPost, base, alice, map[string]any{
		"amount": 15, "category": "Food", "date": "2025-04-02",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = api.do(http.MethodGet, base+"/category", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Expenses by category retrieved successfully", env.Message)
	var groups []struct {
		Category string  `json:"category"`
		Total    float64 `json:"total"`
		Count    int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "Transport", groups[0].Category)

	rec, env = api.do(http.MethodPut, fmt.Sprintf("%s/%d", base, id), alice, map[string]any{"amount": 42})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"amount":42`)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("%s/%d", base, id), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Expense retrieved successfully", env.Message)

	rec, _ = api.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, id), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("%s/%d", base, id), alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Expense not found", env.Message)
}

func TestExpenses_Validation(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/expenses", api.createTrip(alice, "Tokyo"))

	rec, env := api.do(http.MethodPost, base, alice, map[string]any{
		"amount": -1, "category": "Snacks",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Errors, &fields))
	got := map[string]string{}
	for _, f := range fields {
		got[f.Field] = f.Message
	}
	assert.Equal(t, map[string]string{
		"amount":   "Amount must be a positive number",
		"category": "Category must be one of: Food, Transport, Accommodation, Activities, Shopping, Other",
		"date":     "Date is required",
	}, got)
}

func TestExpenses_MultipartReceipt(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/expenses", api.createTrip(alice, "Tokyo"))

	req := multipartRequest(t, http.MethodPost, base, map[string]string{
		"amount": "19.99", "category": "Shopping", "date": "2025-04-05",
	}, filePart{field: "receipt", name: "receipt.png", contentType: "image/png", data: pngData})
	rec, env := api.send(req, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var e struct {
		Amount       float64 `json:"amount"`
		ReceiptImage *string `json:"receipt_image"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &e))
	assert.InDelta(t, 19.99, e.Amount, 1e-9)
	require.NotNil(t, e.ReceiptImage)
	require.True(t, strings.HasPrefix(*e.ReceiptImage, "/uploads/receipts/"), *e.ReceiptImage)

	rec, _ = api.send(httptest.NewRequest(http.MethodGet, *e.ReceiptImage, nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(pngData), rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestExpenses_MultipartBadAmount(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/expenses", api.createTrip(alice, "Tokyo"))

	req := multipartRequest(t, http.MethodPost, base, map[string]string{
		"amount": "lots", "category": "Food", "date": "2025-04-05",
	})
	rec, env := api.send(req, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.Contains(t, string(env.Errors), "Amount must be a positive number")
}

func TestItinerary_CRUD(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/itinerary", api.createTrip(alice, "Tokyo"))

	rec, env := api.do(http.MethodPost, base, alice, map[string]any{
		"day_number": 2, "date": "2025-04-02", "title": "Kyoto",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Itinerary day added successfully", env.Message)
	id := dataID(t, env)

	rec, _ = api.do(http.MethodPost, base, alice, map[string]any{"day_number": 1, "date": "2025-04-01"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = api.do(http.MethodGet, base, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []struct {
		DayNumber int `json:"day_number"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].DayNumber)

	rec, env = api.do(http.MethodPut, fmt.Sprintf("%s/%d", base, id), alice, map[string]any{"title": "Nara"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"title":"Nara"`)

	rec, _ = api.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, id), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, fmt.Sprintf("%s/%d", base, id), alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Itinerary day not found", env.Message)

	rec, _ = api.do(http.MethodPost, base, alice, map[string]any{"day_number": 0, "date": "2025-04-01"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImages_UploadServeDelete(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/images", api.createTrip(alice, "Tokyo"))

	req := multipartRequest(t, http.MethodPost, base, map[string]string{"caption": "Shibuya"},
		filePart{field: "image", name: "night.jpg", contentType: "image/jpeg", data: jpegData})
	rec, env := api.send(req, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Image uploaded successfully", env.Message)

	var img struct {
		ID       int64   `json:"id"`
		ImageURL string  `json:"image_url"`
		Caption  *string `json:"caption"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &img))
	require.True(t, strings.HasPrefix(img.ImageURL, "/uploads/images/"), img.ImageURL)
	assert.Equal(t, "Shibuya", *img.Caption)
	assert.NotContains(t, string(env.Data), "storage_key")

	rec, _ = api.send(httptest.NewRequest(http.MethodGet, img.ImageURL, nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, string(jpegData), string(body))

	rec, env = api.do(http.MethodPut, fmt.Sprintf("%s/%d", base, img.ID), alice, map[string]any{"caption": "Shibuya crossing"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Shibuya crossing")

	rec, _ = api.do(http.MethodDelete, fmt.Sprintf("%s/%d", base, img.ID), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.send(httptest.NewRequest(http.MethodGet, img.ImageURL, nil), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImages_UploadRejections(t *testing.T) {
	api := newTestAPIWithLimit(t, 1<<20)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/images", api.createTrip(alice, "Tokyo"))

	// no file at all
	rec, env := api.send(multipartRequest(t, http.MethodPost, base, map[string]string{"caption": "x"}), alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No image file provided", env.Message)

	// not multipart
	req := httptest.NewRequest(http.MethodPost, base, bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec, env = api.send(req, alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No image file provided", env.Message)

	// wrong type
	rec, env = api.send(multipartRequest(t, http.MethodPost, base, nil,
		filePart{field: "image", name: "notes.txt", contentType: "text/plain", data: []byte("hi")}), alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only image files are allowed", env.Message)

	// markup declared as an image
	rec, env = api.send(multipartRequest(t, http.MethodPost, base, nil,
		filePart{field: "image", name: "evil.html", contentType: "image/png", data: []byte("<script>alert(1)</script>")}), alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only image files are allowed", env.Message)

	// too large
	big := bytes.Repeat([]byte{'a'}, 1<<20+1)
	rec, env = api.send(multipartRequest(t, http.MethodPost, base, nil,
		filePart{field: "image", name: "big.jpg", contentType: "image/jpeg", data: big}), alice)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File too large. Maximum size is 1MB.", env.Message)
}

func TestImages_StoredUnderSniffedType(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	base := fmt.Sprintf("/api/trips/%d/images", api.createTrip(alice, "Tokyo"))

	// a real png uploaded with a markup file name and a jpeg declaration
	rec, env := api.send(multipartRequest(t, http.MethodPost, base, nil,
		filePart{field: "image", name: "evil.html", contentType: "image/jpeg", data: pngData}), alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var img struct {
		ImageURL string `json:"image_url"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &img))
	assert.True(t, strings.HasSuffix(img.ImageURL, ".png"), img.ImageURL)

	rec, _ = api.send(httptest.NewRequest(http.MethodGet, img.ImageURL, nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "sandbox")
}

func TestComments_AuthorRules(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	bob := api.signUp("bob")

	// bob owns the trip, alice comments on it
	tripID := api.createTrip(bob, "Osaka")
	tripComments := fmt.Sprintf("/api/comments/trips/%d/comments", tripID)

	rec, env := api.do(http.MethodPost, tripComments, "", map[string]any{"comment_text": "hi"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = api.do(http.MethodPost, tripComments, alice, map[string]any{"comment_text": "Have fun!"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Comment added successfully", env.Message)
	assert.Contains(t, string(env.Data), `"username":"alice"`)
	commentID := dataID(t, env)
	commentPath := fmt.Sprintf("/api/comments/%d", commentID)

	// public read
	rec, env = api.do(http.MethodGet, tripComments, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Comments retrieved successfully", env.Message)
	assert.Contains(t, string(env.Data), "Have fun!")

	rec, env = api.do(http.MethodPut, commentPath, bob, map[string]any{"comment_text": "edited by bob"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only edit your own comments", env.Message)

	rec, env = api.do(http.MethodDelete, commentPath, bob, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only delete your own comments", env.Message)

	rec, env = api.do(http.MethodPut, commentPath, alice, map[string]any{"comment_text": "Have lots of fun!"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Have lots of fun!")

	rec, _ = api.do(http.MethodDelete, commentPath, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodDelete, commentPath, alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Comment not found", env.Message)
}

func TestComments_OnImages(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("alice")
	tripID := api.createTrip(alice, "Tokyo")

	req := multipartRequest(t, http.MethodPost, fmt.Sprintf("/api/trips/%d/images", tripID), nil,
		filePart{field: "image", name: "a.png", contentType: "image/png", data: pngData})
	rec, env := api.send(req, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	imageID := dataID(t, env)

	path := fmt.Sprintf("/api/comments/images/%d/comments", imageID)
	rec, _ = api.do(http.MethodPost, path, alice, map[string]any{"comment_text": "Neon"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = api.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Image comments retrieved successfully", env.Message)
	assert.Contains(t, string(env.Data), "Neon")

	// image comments stay out of the trip thread
	rec, env = api.do(http.MethodGet, fmt.Sprintf("/api/comments/trips/%d/comments", tripID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	rec, env = api.do(http.MethodPost, "/api/comments/images/9999/comments", alice, map[string]any{"comment_text": "?"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Image not found", env.Message)

	rec, env = api.do(http.MethodPost, path, alice, map[string]any{"comment_text": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Errors), "Comment text is required")
}
