package ports

import (
	"context"

	"github.com/rgallego/shiftwise/internal/core/domain"
)

// JobRepository abstracts durable job storage (DuckDB in production,
// in-memory in tests).
type JobRepository interface {
	// CreateJob persists a new job together with all of its shifts in
	// one transaction.
	CreateJob(ctx context.Context, job *domain.Job) error

	// SaveJob updates a job and every shift attached to it. The write
	// fails with domain.ErrVersionConflict when the stored version no
	// longer matches the one read.
	SaveJob(ctx context.Context, job *domain.Job) error

	// GetJob retrieves a job by id, eager-loading its shifts on demand.
	GetJob(ctx context.Context, id domain.JobID, withShifts bool) (*domain.Job, error)

	// ListJobs returns one page of jobs ordered by creation time
	// ascending, without shifts, plus the total job count.
	ListJobs(ctx context.Context, limit, offset int) ([]domain.Job, int, error)
}

// ShiftRepository abstracts durable shift storage.
type ShiftRepository interface {
	GetShift(ctx context.Context, id domain.ShiftID) (*domain.Shift, error)

	// ListShiftsByJob returns all shifts of a job; an unknown job yields
	// an empty slice, not an error.
	ListShiftsByJob(ctx context.Context, jobID domain.JobID) ([]domain.Shift, error)

	// ListBookedShiftsByTalent returns the talent's BOOKED shifts
	// ordered by end time descending.
	ListBookedShiftsByTalent(ctx context.Context, talentID domain.TalentID) ([]domain.Shift, error)

	// ListShifts returns one page of shifts ordered by creation time
	// ascending.
	ListShifts(ctx context.Context, limit, offset int) ([]domain.Shift, error)

	// SaveShift updates an existing shift, enforcing the version check.
	SaveShift(ctx context.Context, shift *domain.Shift) error

	// SaveShifts updates a batch of existing shifts.
	SaveShifts(ctx context.Context, shifts []domain.Shift) error

	// CreateShifts inserts freshly generated shifts (replacements).
	CreateShifts(ctx context.Context, shifts []domain.Shift) error
}
