package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/auth"
	"github.com/dmitrijs2005/travelmate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/travelmate/internal/server/services"
	"github.com/dmitrijs2005/travelmate/internal/server/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testOrigin = "http://localhost:3000"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
	tokens  *auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithLimit(t, 5<<20)
}

func newTestAPIWithLimit(t *testing.T, maxUpload int64) *testAPI {
	t.Helper()

	log := logging.Discard()
	m := repomanager.NewInMemoryRepositoryManager()
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	tokens := auth.NewTokenService([]byte("rest-test-secret"), time.Hour)
	users := services.NewUserService(nil, m, auth.NewPasswordHasher(bcrypt.MinCost), tokens, log)
	gate := auth.NewGate(tokens, users, log)

	srv := NewServer(Options{
		ClientURL:      testOrigin,
		MaxUploadBytes: maxUpload,
		Uploads:        store.Handler(),
		UploadsPrefix:  store.Prefix(),
	}, Services{
		Users:     users,
		Trips:     services.NewTripService(nil, m, store, log),
		Expenses:  services.NewExpenseService(nil, m, store, log),
		Itinerary: services.NewItineraryService(nil, m),
		Images:    services.NewImageService(nil, m, store, log),
		Comments:  services.NewCommentService(nil, m),
	}, gate, log)
	srv.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return &testAPI{t: t, handler: srv.Handler(), tokens: tokens}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.send(req, token)
}

func (a *testAPI) send(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); len(ct) >= 16 && ct[:16] == "application/json" {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

// signUp registers name and returns a token for it.
func (a *testAPI) signUp(name string) string {
	a.t.Helper()
	rec, _ := a.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": name,
		"email":    name + "@example.com",
		"password": "secret123",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := a.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    name + "@example.com",
		"password": "secret123",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	return data.Token
}

// createTrip creates a trip and returns its id.
func (a *testAPI) createTrip(token, name string) int64 {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/trips", token, map[string]any{
		"name":        name,
		"destination": "Japan",
		"start_date":  "2025-04-01",
		"end_date":    "2025-04-10",
		"budget":      3000,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return dataID(a.t, env)
}

func dataID(t *testing.T, env envelope) int64 {
	t.Helper()
	var v struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	require.NotZero(t, v.ID)
	return v.ID
}

// Minimal payloads carrying real image signatures.
var (
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
)

type filePart struct {
	field, name, contentType string
	data                     []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newRawRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
