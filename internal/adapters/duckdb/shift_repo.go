package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgallego/shiftwise/internal/core/domain"
)

func (r *Repository) GetShift(ctx context.Context, id domain.ShiftID) (*domain.Shift, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, job_id, talent_id, start_time, end_time, status, version, created_at, updated_at
		 FROM shifts WHERE id = ?`, string(id))

	shift, err := scanShift(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrShiftNotFound
		}
		return nil, err
	}
	return shift, nil
}

func (r *Repository) ListShiftsByJob(ctx context.Context, jobID domain.JobID) ([]domain.Shift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, talent_id, start_time, end_time, status, version, created_at, updated_at
		 FROM shifts WHERE job_id = ? ORDER BY start_time ASC`, string(jobID))
	if err != nil {
		return nil, fmt.Errorf("list shifts by job: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (r *Repository) ListBookedShiftsByTalent(ctx context.Context, talentID domain.TalentID) ([]domain.Shift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, talent_id, start_time, end_time, status, version, created_at, updated_at
		 FROM shifts WHERE talent_id = ? AND status = ? ORDER BY end_time DESC`,
		string(talentID), string(domain.StatusBooked))
	if err != nil {
		return nil, fmt.Errorf("list booked shifts by talent: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (r *Repository) ListShifts(ctx context.Context, limit, offset int) ([]domain.Shift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, job_id, talent_id, start_time, end_time, status, version, created_at, updated_at
		 FROM shifts ORDER BY created_at ASC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	return collectShifts(rows)
}

func (r *Repository) SaveShift(ctx context.Context, shift *domain.Shift) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := updateShiftTx(ctx, tx, shift); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repository) SaveShifts(ctx context.Context, shifts []domain.Shift) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i := range shifts {
		if err := updateShiftTx(ctx, tx, &shifts[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) CreateShifts(ctx context.Context, shifts []domain.Shift) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i := range shifts {
		if err := insertShiftTx(ctx, tx, &shifts[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertShiftTx(ctx context.Context, tx *sql.Tx, shift *domain.Shift) error {
	shift.Version = 1
	_, err := tx.ExecContext(ctx,
		`INSERT INTO shifts (id, job_id, talent_id, start_time, end_time, status, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(shift.ID), string(shift.JobID), talentArg(shift.TalentID),
		shift.StartTime, shift.EndTime, string(shift.Status),
		shift.Version, shift.CreatedAt, shift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shift %s: %w", shift.ID, err)
	}
	return nil
}

func updateShiftTx(ctx context.Context, tx *sql.Tx, shift *domain.Shift) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE shifts
		 SET talent_id = ?, status = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		talentArg(shift.TalentID), string(shift.Status), shift.UpdatedAt,
		string(shift.ID), shift.Version,
	)
	if err != nil {
		return fmt.Errorf("update shift %s: %w", shift.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return staleWriteErr(ctx, tx, "shifts", string(shift.ID), domain.ErrShiftNotFound)
	}
	shift.Version++
	return nil
}

func collectShifts(rows *sql.Rows) ([]domain.Shift, error) {
	shifts := []domain.Shift{}
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}
	return shifts, rows.Err()
}

func scanShift(row rowScanner) (*domain.Shift, error) {
	var shift domain.Shift
	var id, jobID, status string
	var talentID sql.NullString
	if err := row.Scan(&id, &jobID, &talentID, &shift.StartTime, &shift.EndTime, &status, &shift.Version, &shift.CreatedAt, &shift.UpdatedAt); err != nil {
		return nil, err
	}
	shift.ID = domain.ShiftID(id)
	shift.JobID = domain.JobID(jobID)
	shift.Status = domain.Status(status)
	if talentID.Valid {
		t := domain.TalentID(talentID.String)
		shift.TalentID = &t
	}
	shift.StartTime = shift.StartTime.UTC()
	shift.EndTime = shift.EndTime.UTC()
	shift.CreatedAt = shift.CreatedAt.UTC()
	shift.UpdatedAt = shift.UpdatedAt.UTC()
	return &shift, nil
}

func talentArg(id *domain.TalentID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}
