package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/travelmate/internal/common"
)

const (
	msgInternal     = "Internal server error"
	msgBadBody      = "Invalid request body"
	msgBadReference = "Referenced record does not exist."
	msgDuplicate    = "Duplicate entry. This record already exists."
)

type successBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successBody{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string, errs any) {
	writeJSON(w, status, errorBody{Success: false, Message: message, Errors: errs})
}

// fail writes the error response for err. Unexpected errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	var ce *common.ClientError

	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message, ve.Fields)
	case errors.As(err, &ce):
		writeError(w, statusOf(ce.Err), ce.Message, nil)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, common.ErrorInvalidReference):
		writeError(w, http.StatusBadRequest, msgBadReference, nil)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusBadRequest, msgDuplicate, nil)
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal, nil)
	}
}

func statusOf(sentinel error) int {
	switch {
	case errors.Is(sentinel, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(sentinel, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(sentinel, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}
