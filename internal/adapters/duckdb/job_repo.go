package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rgallego/shiftwise/internal/core/domain"
)

func (r *Repository) CreateJob(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	job.Version = 1
	_, err = tx.ExecContext(ctx,
		`INSERT INTO jobs (id, company_id, start_time, end_time, status, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(job.ID), string(job.CompanyID), job.StartTime, job.EndTime,
		string(job.Status), job.Version, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	for i := range job.Shifts {
		if err := insertShiftTx(ctx, tx, &job.Shifts[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) SaveJob(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE jobs
		 SET company_id = ?, start_time = ?, end_time = ?, status = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		string(job.CompanyID), job.StartTime, job.EndTime, string(job.Status),
		job.UpdatedAt, string(job.ID), job.Version,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return staleWriteErr(ctx, tx, "jobs", string(job.ID), domain.ErrJobNotFound)
	}
	job.Version++

	for i := range job.Shifts {
		if err := updateShiftTx(ctx, tx, &job.Shifts[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *Repository) GetJob(ctx context.Context, id domain.JobID, withShifts bool) (*domain.Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, company_id, start_time, end_time, status, version, created_at, updated_at
		 FROM jobs WHERE id = ?`, string(id))

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}

	if withShifts {
		shifts, err := r.ListShiftsByJob(ctx, id)
		if err != nil {
			return nil, err
		}
		job.Shifts = shifts
	}
	return job, nil
}

func (r *Repository) ListJobs(ctx context.Context, limit, offset int) ([]domain.Job, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, company_id, start_time, end_time, status, version, created_at, updated_at
		 FROM jobs ORDER BY created_at ASC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var id, companyID, status string
	if err := row.Scan(&id, &companyID, &job.StartTime, &job.EndTime, &status, &job.Version, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	job.ID = domain.JobID(id)
	job.CompanyID = domain.CompanyID(companyID)
	job.Status = domain.Status(status)
	job.StartTime = job.StartTime.UTC()
	job.EndTime = job.EndTime.UTC()
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
	return &job, nil
}

// staleWriteErr distinguishes a version mismatch from a missing row
// after a zero-row UPDATE.
func staleWriteErr(ctx context.Context, tx *sql.Tx, table, id string, notFound error) error {
	var exists bool
	query := fmt.Sprintf(`SELECT count(*) > 0 FROM %s WHERE id = ?`, table)
	if err := tx.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return domain.ErrVersionConflict
}
