// Package memory holds an in-memory implementation of the repository
// ports, used by the service and API tests. It enforces the same
// version checks as the DuckDB adapter.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rgallego/shiftwise/internal/core/domain"
	"github.com/rgallego/shiftwise/internal/core/ports"
)

type Store struct {
	mu     sync.RWMutex
	jobs   map[domain.JobID]domain.Job
	shifts map[domain.ShiftID]domain.Shift
}

var (
	_ ports.JobRepository   = (*Store)(nil)
	_ ports.ShiftRepository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		jobs:   make(map[domain.JobID]domain.Job),
		shifts: make(map[domain.ShiftID]domain.Shift),
	}
}

func (s *Store) CreateJob(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job.Version = 1
	for i := range job.Shifts {
		job.Shifts[i].Version = 1
		s.shifts[job.Shifts[i].ID] = job.Shifts[i]
	}
	stored := *job
	stored.Shifts = nil
	s.jobs[job.ID] = stored
	return nil
}

func (s *Store) SaveJob(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[job.ID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if current.Version != job.Version {
		return domain.ErrVersionConflict
	}
	job.Version++
	for i := range job.Shifts {
		sh := &job.Shifts[i]
		stored, ok := s.shifts[sh.ID]
		if !ok {
			return domain.ErrShiftNotFound
		}
		if stored.Version != sh.Version {
			return domain.ErrVersionConflict
		}
		sh.Version++
		s.shifts[sh.ID] = *sh
	}
	stored := *job
	stored.Shifts = nil
	s.jobs[job.ID] = stored
	return nil
}

func (s *Store) GetJob(_ context.Context, id domain.JobID, withShifts bool) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if withShifts {
		for _, sh := range s.shifts {
			if sh.JobID == id {
				job.Shifts = append(job.Shifts, sh)
			}
		}
		sort.Slice(job.Shifts, func(i, j int) bool {
			return job.Shifts[i].StartTime.Before(job.Shifts[j].StartTime)
		})
	}
	return &job, nil
}

func (s *Store) ListJobs(_ context.Context, limit, offset int) ([]domain.Job, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		all = append(all, job)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []domain.Job{}, total, nil
	}
	endIdx := offset + limit
	if endIdx > total {
		endIdx = total
	}
	return all[offset:endIdx], total, nil
}

func (s *Store) GetShift(_ context.Context, id domain.ShiftID) (*domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shift, ok := s.shifts[id]
	if !ok {
		return nil, domain.ErrShiftNotFound
	}
	return &shift, nil
}

func (s *Store) ListShiftsByJob(_ context.Context, jobID domain.JobID) ([]domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Shift{}
	for _, sh := range s.shifts {
		if sh.JobID == jobID {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *Store) ListBookedShiftsByTalent(_ context.Context, talentID domain.TalentID) ([]domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Shift{}
	for _, sh := range s.shifts {
		if sh.Status == domain.StatusBooked && sh.TalentID != nil && *sh.TalentID == talentID {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EndTime.After(out[j].EndTime)
	})
	return out, nil
}

func (s *Store) ListShifts(_ context.Context, limit, offset int) ([]domain.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Shift, 0, len(s.shifts))
	for _, sh := range s.shifts {
		all = append(all, sh)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []domain.Shift{}, nil
	}
	endIdx := offset + limit
	if endIdx > len(all) {
		endIdx = len(all)
	}
	return all[offset:endIdx], nil
}

func (s *Store) SaveShift(_ context.Context, shift *domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveShiftLocked(shift)
}

func (s *Store) SaveShifts(_ context.Context, shifts []domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range shifts {
		if err := s.saveShiftLocked(&shifts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CreateShifts(_ context.Context, shifts []domain.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range shifts {
		shifts[i].Version = 1
		s.shifts[shifts[i].ID] = shifts[i]
	}
	return nil
}

func (s *Store) saveShiftLocked(shift *domain.Shift) error {
	current, ok := s.shifts[shift.ID]
	if !ok {
		return domain.ErrShiftNotFound
	}
	if current.Version != shift.Version {
		return domain.ErrVersionConflict
	}
	shift.Version++
	s.shifts[shift.ID] = *shift
	return nil
}
