package rest

import (
	"net/http"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
	"github.com/dmitrijs2005/travelmate/internal/server/services"
)

const msgBadCredentials = "Invalid email or password"

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	u, err := s.svc.Users.Register(r.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "User registered successfully", u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !res.OK {
		s.fail(w, r, common.Unauthorized(msgBadCredentials))
		return
	}
	writeOK(w, http.StatusOK, "Login successful", loginResponse{Token: res.Token, User: res.User})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, "User retrieved successfully", principal(r))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := s.bind(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	u, err := s.svc.Users.UpdateProfile(r.Context(), principal(r).ID, models.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Profile updated successfully", u)
}
