package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skillsync/internal/db"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// handleRegister handles user registration requests.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	userID, err := s.store.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			err = &ErrEmailAlreadyExists{Email: req.Email}
		} else {
			s.logError(r, err)
			err = errors.New("failed to register user")
		}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwt.GenerateToken(userID)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		UserID: userID.String(),
		Email:  req.Email,
		Token:  token,
	})
}

// handleLogin handles user login requests. Unknown emails and wrong
// passwords produce the same response.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logError(r, err)
		}
		invalid := &ErrInvalidCredentials{}
		writeError(w, HTTPStatus(invalid), invalid.Error())
		return
	}

	if !s.auth.VerifyPassword(req.Password, user.PasswordHash) {
		invalid := &ErrInvalidCredentials{}
		writeError(w, HTTPStatus(invalid), invalid.Error())
		return
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		UserID: user.ID.String(),
		Email:  user.Email,
		Token:  token,
	})
}

// extractValidationErrors extracts a message from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
