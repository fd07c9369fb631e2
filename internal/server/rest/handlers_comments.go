package rest

import "net/http"

const msgCommentNotFound = "Comment not found"

func (s *Server) handleListTripComments(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := s.svc.Comments.ListForTrip(r.Context(), tripID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Comments retrieved successfully", list)
}

func (s *Server) handleListImageComments(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageId", msgImageNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	list, err := s.svc.Comments.ListForImage(r.Context(), imageID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Image comments retrieved successfully", list)
}

func (s *Server) handleAddTripComment(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req commentRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.svc.Comments.AddToTrip(r.Context(), principal(r).ID, tripID, req.CommentText)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Comment added successfully", c)
}

func (s *Server) handleAddImageComment(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageId", msgImageNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req commentRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.svc.Comments.AddToImage(r.Context(), principal(r).ID, imageID, req.CommentText)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Comment added successfully", c)
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgCommentNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req commentRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	c, err := s.svc.Comments.Update(r.Context(), principal(r).ID, id, req.CommentText)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Comment updated successfully", c)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", msgCommentNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Comments.Delete(r.Context(), principal(r).ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Comment deleted successfully", nil)
}
