package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "user registered", "user_id", user.ID)

	s.writeToken(w, r, user.ID)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.users.Verify(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeToken(w, r, user.ID)
}

func (s *Server) writeToken(w http.ResponseWriter, r *http.Request, userID string) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	user, err := s.users.Get(r.Context(), userID)
	if err != nil {
		// A valid token for a user that no longer exists.
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	})
}
