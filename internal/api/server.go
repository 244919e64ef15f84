// Package api exposes the scheduling core over HTTP. Handlers stay
// thin: parse and validate the request, call the service, translate
// the result into the response contract.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rgallego/shiftwise/internal/config"
	"github.com/rgallego/shiftwise/internal/core/domain"
	"github.com/rgallego/shiftwise/internal/core/services"
)

type Server struct {
	logger     *slog.Logger
	jobs       *services.JobService
	shifts     *services.ShiftService
	scheduling config.Scheduling
	validate   *validator.Validate
	openapi    []byte
}

func NewServer(logger *slog.Logger, jobs *services.JobService, shifts *services.ShiftService, scheduling config.Scheduling) (*Server, error) {
	doc, err := loadOpenAPIDocument()
	if err != nil {
		return nil, err
	}
	return &Server{
		logger:     logger,
		jobs:       jobs,
		shifts:     shifts,
		scheduling: scheduling,
		validate:   validator.New(),
		openapi:    doc,
	}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/openapi.json", s.handleOpenAPI)

		r.Route("/jobs", func(r chi.Router) {
			r.Post("/", s.handleCreateJob)
			r.Get("/", s.handleListJobs)
			r.Get("/{jobID}", s.handleGetJob)
			r.Patch("/{jobID}/cancel", s.handleCancelJob)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", s.handleListShifts)
			r.Patch("/talent/{talentID}/cancel", s.handleCancelTalentShifts)
			r.Get("/{jobID}", s.handleShiftsByJob)
			r.Patch("/{shiftID}/book", s.handleBookTalent)
			r.Patch("/{shiftID}/cancel", s.handleCancelShift)
		})
	})

	return r
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fieldMessages(err))
		return
	}

	job, err := s.jobs.CreateJob(r.Context(), domain.CompanyID(req.CompanyID), req.Start, req.End)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, dataEnvelope{Data: jobCreatedResponse{JobID: job.ID}})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	pageSize, pageNumber := pageParams(r)
	jobs, total, err := s.jobs.GetJobs(r.Context(), pageSize, pageNumber)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, jobListResponse{Total: total, Jobs: summarize(jobs)})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.uuidParam(w, r, "jobID")
	if !ok {
		return
	}
	job, err := s.jobs.GetJobByID(r.Context(), domain.JobID(jobID))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.uuidParam(w, r, "jobID")
	if !ok {
		return
	}
	if _, err := s.jobs.CancelJob(r.Context(), domain.JobID(jobID)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListShifts(w http.ResponseWriter, r *http.Request) {
	pageSize, pageNumber := pageParams(r)
	shifts, err := s.shifts.GetAllShifts(r.Context(), pageSize, pageNumber)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, shifts)
}

func (s *Server) handleShiftsByJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.uuidParam(w, r, "jobID")
	if !ok {
		return
	}
	shifts, err := s.shifts.GetShiftsByJob(r.Context(), domain.JobID(jobID))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dataEnvelope{Data: shiftListEnvelope{Shifts: shifts}})
}

func (s *Server) handleBookTalent(w http.ResponseWriter, r *http.Request) {
	shiftID, ok := s.uuidParam(w, r, "shiftID")
	if !ok {
		return
	}
	var req BookTalentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fieldMessages(err))
		return
	}

	if _, err := s.shifts.BookTalent(r.Context(), domain.TalentID(req.Talent), domain.ShiftID(shiftID)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCancelShift(w http.ResponseWriter, r *http.Request) {
	shiftID, ok := s.uuidParam(w, r, "shiftID")
	if !ok {
		return
	}
	if _, err := s.shifts.CancelShiftByID(r.Context(), domain.ShiftID(shiftID)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCancelTalentShifts(w http.ResponseWriter, r *http.Request) {
	talentID, ok := s.uuidParam(w, r, "talentID")
	if !ok {
		return
	}
	if _, err := s.shifts.CancelShiftsByTalent(r.Context(), domain.TalentID(talentID)); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.openapi)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// uuidParam validates a path parameter: malformed ids are a 400
// before the core is touched.
func (s *Server) uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if _, err := uuid.Parse(value); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Validation failed ("+name+" must be a UUID)")
		return "", false
	}
	return value, true
}

// pageParams reads pageSize/pageNumber; anything non-numeric falls back
// to zero, which the services replace with the configured defaults.
func pageParams(r *http.Request) (pageSize, pageNumber int) {
	q := r.URL.Query()
	pageSize, _ = strconv.Atoi(q.Get("pageSize"))
	pageNumber, _ = strconv.Atoi(q.Get("pageNumber"))
	return pageSize, pageNumber
}
