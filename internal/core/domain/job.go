package domain

import "time"

type JobID string

type CompanyID string

// Status is shared by jobs and shifts. The zero value is treated the
// same as StatusBooked by the cancellation paths, matching records
// persisted before the status column existed.
type Status string

const (
	StatusPending Status = "pending"
	StatusBooked  Status = "booked"
	StatusCancel  Status = "canceled"
)

// Job is a company's request for coverage over a date range. It owns
// one shift per calendar day in [StartTime, EndTime].
type Job struct {
	ID        JobID     `json:"id"`
	CompanyID CompanyID `json:"companyId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    Status    `json:"jobStatus"`
	Shifts    []Shift   `json:"shifts,omitempty"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
