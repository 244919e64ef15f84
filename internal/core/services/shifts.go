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

// ShiftService is the booking engine: it decides whether a talent may
// take a shift and handles shift-level cancellation, including the
// replacement shifts generated when a talent walks away.
type ShiftService struct {
	logger *slog.Logger
	shifts ports.ShiftRepository
	cfg    config.Scheduling
	paging config.Paging
	now    func() time.Time
}

func NewShiftService(logger *slog.Logger, shifts ports.ShiftRepository, cfg config.Scheduling, paging config.Paging) *ShiftService {
	return &ShiftService{
		logger: logger,
		shifts: shifts,
		cfg:    cfg,
		paging: paging,
		now:    time.Now,
	}
}

// BookTalent assigns the talent to the shift after the conflict scan.
// Cheap guards run first: the shift must exist and must not already be
// booked. Then the candidate window and its rest-period buffer are
// checked against every shift the talent already holds; boundaries are
// inclusive, so back-to-back shifts count as conflicting.
func (s *ShiftService) BookTalent(ctx context.Context, talentID domain.TalentID, shiftID domain.ShiftID) (*domain.Shift, error) {
	shift, err := s.shifts.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status == domain.StatusBooked {
		return nil, domain.ErrAlreadyBooked
	}

	booked, err := s.shifts.ListBookedShiftsByTalent(ctx, talentID)
	if err != nil {
		return nil, fmt.Errorf("load booked shifts for talent %s: %w", talentID, err)
	}

	if timeConflicts(shift.StartTime, booked) || timeConflicts(shift.EndTime, booked) {
		return nil, domain.ErrTimeConflict
	}

	rest := time.Duration(s.cfg.BreakHours) * time.Hour
	if timeConflicts(shift.StartTime.Add(-rest), booked) || timeConflicts(shift.EndTime.Add(rest), booked) {
		return nil, domain.ErrRestPeriodViolation
	}

	shift.TalentID = &talentID
	shift.Status = domain.StatusBooked
	shift.UpdatedAt = s.now()
	if err := s.shifts.SaveShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("book shift %s: %w", shiftID, err)
	}

	s.logger.Info("shift booked", "shift_id", shiftID, "talent_id", talentID)
	return shift, nil
}

// CancelShiftByID cancels a single shift. Only unset or BOOKED shifts
// can be canceled; anything else means there is nothing to cancel.
func (s *ShiftService) CancelShiftByID(ctx context.Context, shiftID domain.ShiftID) (*domain.Shift, error) {
	shift, err := s.shifts.GetShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != "" && shift.Status != domain.StatusBooked {
		return nil, domain.ErrNotBookedYet
	}

	shift.Status = domain.StatusCancel
	shift.UpdatedAt = s.now()
	if err := s.shifts.SaveShift(ctx, shift); err != nil {
		return nil, fmt.Errorf("cancel shift %s: %w", shiftID, err)
	}

	s.logger.Info("shift canceled", "shift_id", shiftID)
	return shift, nil
}

// CancelShiftsByTalent cancels every shift the talent holds and opens
// an identical PENDING replacement for each, so the underlying work
// slot never goes unscheduled. The canceled originals keep their
// talent assignment for history; the replacements are returned.
func (s *ShiftService) CancelShiftsByTalent(ctx context.Context, talentID domain.TalentID) ([]domain.Shift, error) {
	booked, err := s.shifts.ListBookedShiftsByTalent(ctx, talentID)
	if err != nil {
		return nil, fmt.Errorf("load booked shifts for talent %s: %w", talentID, err)
	}

	now := s.now()
	for i := range booked {
		booked[i].Status = domain.StatusCancel
		booked[i].UpdatedAt = now
	}
	if err := s.shifts.SaveShifts(ctx, booked); err != nil {
		return nil, fmt.Errorf("cancel shifts for talent %s: %w", talentID, err)
	}

	replacements := make([]domain.Shift, 0, len(booked))
	for _, old := range booked {
		replacements = append(replacements, domain.Shift{
			ID:        domain.ShiftID(uuid.NewString()),
			JobID:     old.JobID,
			StartTime: old.StartTime,
			EndTime:   old.EndTime,
			Status:    domain.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := s.shifts.CreateShifts(ctx, replacements); err != nil {
		return nil, fmt.Errorf("create replacement shifts for talent %s: %w", talentID, err)
	}

	s.logger.Info("talent shifts canceled",
		"talent_id", talentID,
		"canceled", len(booked),
		"replacements", len(replacements))
	return replacements, nil
}

// GetShiftsByJob returns every shift of a job; unknown jobs yield an
// empty slice.
func (s *ShiftService) GetShiftsByJob(ctx context.Context, jobID domain.JobID) ([]domain.Shift, error) {
	return s.shifts.ListShiftsByJob(ctx, jobID)
}

// GetAllShifts returns one page of shifts ordered by creation time
// ascending.
func (s *ShiftService) GetAllShifts(ctx context.Context, pageSize, pageNumber int) ([]domain.Shift, error) {
	limit, offset := pageWindow(pageSize, pageNumber, s.paging.ShiftPageSize)
	return s.shifts.ListShifts(ctx, limit, offset)
}

// timeConflicts reports whether t falls within any of the given shift
// windows, bounds included.
func timeConflicts(t time.Time, shifts []domain.Shift) bool {
	for _, sh := range shifts {
		if !t.Before(sh.StartTime) && !t.After(sh.EndTime) {
			return true
		}
	}
	return false
}
