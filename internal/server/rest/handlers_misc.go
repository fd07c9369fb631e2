package rest

import "net/http"

const (
	apiVersion = "1.0.0"

	// isoMillis is RFC 3339 in UTC with millisecond precision.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type indexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "TravelMate API is running",
		Timestamp: s.now().UTC().Format(isoMillis),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message: "Welcome to TravelMate API",
		Version: apiVersion,
		Endpoints: map[string]string{
			"auth":      "/api/auth",
			"trips":     "/api/trips",
			"expenses":  "/api/trips/:tripId/expenses",
			"itinerary": "/api/trips/:tripId/itinerary",
			"images":    "/api/trips/:tripId/images",
			"comments":  "/api/comments",
			"health":    "/api/health",
		},
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route "+r.URL.RequestURI()+" not found", nil)
}
