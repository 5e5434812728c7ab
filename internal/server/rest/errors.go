package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskflow/internal/common"
)

// writeServiceError maps service errors to HTTP responses. Anything not
// recognised is logged and reported as a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, envelope{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, common.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "invalid credentials")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "not authorized to access this task")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	case errors.Is(err, common.ErrVersionConflict):
		writeError(w, http.StatusConflict, "task was modified concurrently, retry the request")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
