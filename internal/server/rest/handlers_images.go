package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/travelmate/internal/server/services"
)

const msgImageNotFound = "Image not found"

func imageIDs(r *http.Request) (tripID, id int64, err error) {
	if tripID, err = pathID(r, "tripId", msgTripNotFound); err != nil {
		return 0, 0, err
	}
	if id, err = pathID(r, "id", msgImageNotFound); err != nil {
		return 0, 0, err
	}
	return tripID, id, nil
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	imgs, err := s.svc.Images.List(r.Context(), principal(r).ID, tripID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Images retrieved successfully", imgs)
}

// handleUploadImage takes a multipart form with an "image" file and an
// optional "caption". A request without a file is passed on so that the
// trip is checked before the missing file is reported.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId", msgTripNotFound)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var file *services.Upload
	var caption *string

	err = s.parseMultipart(w, r)
	switch {
	case errors.Is(err, errNotMultipart):
	case err != nil:
		s.fail(w, r, err)
		return
	default:
		defer r.MultipartForm.RemoveAll()

		var closer io.Closer
		file, closer, err = s.formFile(r, "image")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if closer != nil {
			defer closer.Close()
		}
		caption = formString(r.MultipartForm.Value, "caption")
	}

	if caption != nil {
		if err := s.validator.Struct(&captionRequest{Caption: caption}); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	img, err := s.svc.Images.Upload(r.Context(), principal(r).ID, tripID, file, caption)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Image uploaded successfully", img)
}

func (s *Server) handleUpdateImage(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := imageIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req captionRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	img, err := s.svc.Images.UpdateCaption(r.Context(), principal(r).ID, tripID, id, req.Caption)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Image updated successfully", img)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	tripID, id, err := imageIDs(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Images.Delete(r.Context(), principal(r).ID, tripID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Image deleted successfully", nil)
}
