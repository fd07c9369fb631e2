package rest

import (
	"net/http"
)

const msgTripNotFound = "Trip not found"

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Trips.List(r.Context(), principal(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Trips retrieved successfully", list)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.svc.Trips.Get(r.Context(), id, principal(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Trip retrieved successfully", t)
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	trip, err := req.trip()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.svc.Trips.Create(r.Context(), principal(r).ID, trip)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Trip created successfully", created)
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updateTripRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	upd, err := req.update()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	t, err := s.svc.Trips.Update(r.Context(), id, principal(r).ID, upd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Trip updated successfully", t)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Trips.Delete(r.Context(), id, principal(r).ID); err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Trip deleted successfully", nil)
}

func (s *Server) handleTripSummary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sum, err := s.svc.Trips.Summary(r.Context(), id, principal(r).ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Trip summary retrieved successfully", sum)
}
