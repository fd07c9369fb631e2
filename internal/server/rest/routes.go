package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)

	r.Use(chimw.RequestID)
	r.Use(s.accessLog)
	r.Use(s.recoverer)
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.opts.ClientURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/api/health", s.handleHealth)

	if s.opts.Uploads != nil {
		prefix := "/" + strings.Trim(s.opts.UploadsPrefix, "/")
		r.Handle(prefix+"/*", s.opts.Uploads)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/me", s.handleMe)
			r.Put("/update-profile", s.handleUpdateProfile)
		})
	})

	r.Route("/api/trips", func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/", s.handleListTrips)
		r.Post("/", s.handleCreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.handleGetTrip)
			r.Put("/", s.handleUpdateTrip)
			r.Delete("/", s.handleDeleteTrip)
			r.Get("/summary", s.handleTripSummary)

			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", s.handleListExpenses)
				r.Post("/", s.handleCreateExpense)
				r.Get("/category", s.handleExpensesByCategory)
				r.Get("/{id}", s.handleGetExpense)
				r.Put("/{id}", s.handleUpdateExpense)
				r.Delete("/{id}", s.handleDeleteExpense)
			})

			r.Route("/itinerary", func(r chi.Router) {
				r.Get("/", s.handleListItinerary)
				r.Post("/", s.handleCreateItineraryDay)
				r.Get("/{id}", s.handleGetItineraryDay)
				r.Put("/{id}", s.handleUpdateItineraryDay)
				r.Delete("/{id}", s.handleDeleteItineraryDay)
			})

			r.Route("/images", func(r chi.Router) {
				r.Get("/", s.handleListImages)
				r.Post("/", s.handleUploadImage)
				r.Put("/{id}", s.handleUpdateImage)
				r.Delete("/{id}", s.handleDeleteImage)
			})
		})
	})

	r.Route("/api/comments", func(r chi.Router) {
		r.Get("/trips/{tripId}/comments", s.handleListTripComments)
		r.Get("/images/{imageId}/comments", s.handleListImageComments)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/trips/{tripId}/comments", s.handleAddTripComment)
			r.Post("/images/{imageId}/comments", s.handleAddImageComment)
			r.Put("/{id}", s.handleUpdateComment)
			r.Delete("/{id}", s.handleDeleteComment)
		})
	})

	return r
}
