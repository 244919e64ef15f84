package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rgallego/shiftwise/internal/core/domain"
)

// errorResponse mirrors the envelope every failure is reported with: a
// correlation id, the message (string or list of field messages), the
// status, a timestamp and the request path. Internals never leak.
type errorResponse struct {
	ErrorID    string `json:"errorId"`
	Message    any    `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		ErrorID:    uuid.NewString(),
		Message:    message,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
	})
}

// writeDomainError translates core errors into the HTTP contract:
// business-rule violations are 400 with a specific message, missing
// records 404, lost write races 409, everything else a generic 500.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrJobNotFound), errors.Is(err, domain.ErrShiftNotFound):
		s.writeError(w, r, http.StatusNotFound, "Record not found.")
	case errors.Is(err, domain.ErrStartInPast):
		s.writeError(w, r, http.StatusBadRequest, "The start date must not be in the past")
	case errors.Is(err, domain.ErrEndNotAfterStart):
		s.writeError(w, r, http.StatusBadRequest, "The end date must be after start date")
	case errors.Is(err, domain.ErrShiftTooShort):
		s.writeError(w, r, http.StatusBadRequest, "The shift should not be less than 2 hours.")
	case errors.Is(err, domain.ErrShiftTooLong):
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("The shift should not be more than %d hours.", s.scheduling.ShiftLimitHours))
	case errors.Is(err, domain.ErrAlreadyBooked):
		s.writeError(w, r, http.StatusBadRequest, "The shift has already been booked.")
	case errors.Is(err, domain.ErrTimeConflict):
		s.writeError(w, r, http.StatusBadRequest, "The shifts are conflicting.")
	case errors.Is(err, domain.ErrRestPeriodViolation):
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("There must be %d hours break in between shifts", s.scheduling.BreakHours))
	case errors.Is(err, domain.ErrNotBookedYet):
		s.writeError(w, r, http.StatusBadRequest, "Shift has not been booked.")
	case errors.Is(err, domain.ErrVersionConflict):
		s.writeError(w, r, http.StatusConflict, "The record was modified concurrently, please retry.")
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		s.writeError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
