package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rgallego/shiftwise/internal/config"
	"github.com/rgallego/shiftwise/internal/core/domain"
	"github.com/rgallego/shiftwise/internal/core/ports"
)

// JobService decomposes a requested date range into daily shifts and
// owns the job lifecycle (creation, cancellation, queries).
type JobService struct {
	logger *slog.Logger
	jobs   ports.JobRepository
	cfg    config.Scheduling
	paging config.Paging
	now    func() time.Time
}

func NewJobService(logger *slog.Logger, jobs ports.JobRepository, cfg config.Scheduling, paging config.Paging) *JobService {
	return &JobService{
		logger: logger,
		jobs:   jobs,
		cfg:    cfg,
		paging: paging,
		now:    time.Now,
	}
}

// CreateJob validates the requested range, snaps it to the fixed daily
// window and persists the job with one PENDING shift per calendar day.
//
// Validation runs in a fixed order and the first failing rule wins:
// start not in the past, end after start, span at least two hours,
// span within the configured limit. The length cap is checked against
// the raw requested span, before snapping.
func (s *JobService) CreateJob(ctx context.Context, companyID domain.CompanyID, start, end time.Time) (*domain.Job, error) {
	now := s.now()

	if start.Before(now) {
		return nil, domain.ErrStartInPast
	}
	if !end.After(start) {
		return nil, domain.ErrEndNotAfterStart
	}
	if end.Before(start.Add(2 * time.Hour)) {
		return nil, domain.ErrShiftTooShort
	}
	if end.Sub(start) > time.Duration(s.cfg.ShiftLimitHours)*time.Hour {
		return nil, domain.ErrShiftTooLong
	}

	start = snapToHourUTC(start, s.cfg.DayStartHour)
	end = snapToHourUTC(end, s.cfg.DayEndHour)

	job := &domain.Job{
		ID:        domain.JobID(uuid.NewString()),
		CompanyID: companyID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.StatusBooked,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		job.Shifts = append(job.Shifts, domain.Shift{
			ID:        domain.ShiftID(uuid.NewString()),
			JobID:     job.ID,
			StartTime: snapToHourUTC(day, s.cfg.DayStartHour),
			EndTime:   snapToHourUTC(day, s.cfg.DayEndHour),
			Status:    domain.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info("job created",
		"job_id", job.ID,
		"company_id", job.CompanyID,
		"shifts", len(job.Shifts))
	return job, nil
}

// CancelJob marks the job and every one of its shifts as canceled.
// Cancelling an already-canceled job is a no-op; talent assignments on
// the shifts are kept for history.
func (s *JobService) CancelJob(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	job, err := s.jobs.GetJob(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if job.Status != "" && job.Status != domain.StatusBooked {
		return job, nil
	}

	now := s.now()
	job.Status = domain.StatusCancel
	job.UpdatedAt = now
	for i := range job.Shifts {
		job.Shifts[i].Status = domain.StatusCancel
		job.Shifts[i].UpdatedAt = now
	}

	if err := s.jobs.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("cancel job %s: %w", id, err)
	}

	s.logger.Info("job canceled", "job_id", id, "shifts", len(job.Shifts))
	return job, nil
}

// GetJobs returns one page of job summaries (no shifts) ordered by
// creation time ascending, plus the total count.
func (s *JobService) GetJobs(ctx context.Context, pageSize, pageNumber int) ([]domain.Job, int, error) {
	limit, offset := pageWindow(pageSize, pageNumber, s.paging.JobPageSize)
	return s.jobs.ListJobs(ctx, limit, offset)
}

// GetJobByID returns the full job with its shifts eager-loaded.
func (s *JobService) GetJobByID(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	return s.jobs.GetJob(ctx, id, true)
}

// snapToHourUTC pins t to the given clock hour on t's UTC calendar day.
func snapToHourUTC(t time.Time, hour int) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.UTC)
}

// pageWindow turns 1-based page parameters into limit/offset. Page
// numbers at or below zero mean the first page; non-positive sizes fall
// back to the configured default.
func pageWindow(pageSize, pageNumber, defaultSize int) (limit, offset int) {
	limit = pageSize
	if limit <= 0 {
		limit = defaultSize
	}
	if pageNumber > 0 {
		offset = (pageNumber - 1) * limit
	}
	return limit, offset
}
