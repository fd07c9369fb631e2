package rest

import "net/http"

const msgItineraryNotFound = "Itinerary day not found"

func itineraryIDs(r *http.Request) (tripID, id int64, err error) {
	if tripID, err = pathID(r, "tripId", msgTripNotFound); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(r, "id", msgItineraryNotFound); err != nil {
		return 0, 0, err
	}
	return tripID, id, nil
}

func (s *Server) handleListItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	days, err := s.svc.Itinerary.List(r.Context(), principal(r).ID, tripID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Itinerary days retrieved successfully", days)
}

func (s *Server) handleGetItineraryDay(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := itineraryIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.svc.Itinerary.Get(r.Context(), principal(r).ID, tripID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Itinerary day retrieved successfully", d)
}

func (s *Server) handleCreateItineraryDay(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req createItineraryDayRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	day, err := req.day()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.svc.Itinerary.Create(r.Context(), principal(r).ID, tripID, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Itinerary day added successfully", created)
}

func (s *Server) handleUpdateItineraryDay(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := itineraryIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req updateItineraryDayRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	upd, err := req.update()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	d, err := s.svc.Itinerary.Update(r.Context(), principal(r).ID, tripID, id, upd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Itinerary day updated successfully", d)
}

func (s *Server) handleDeleteItineraryDay(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := itineraryIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Itinerary.Delete(r.Context(), principal(r).ID, tripID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Itinerary day deleted successfully", nil)
}
