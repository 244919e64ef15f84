package domain

import "time"

type ShiftID string

type TalentID string

// Shift is one day's work window belonging to a job. TalentID is nil
// until the shift is booked; cancellation keeps the last assignment
// for history.
type Shift struct {
	ID        ShiftID   `json:"id"`
	JobID     JobID     `json:"jobId"`
	TalentID  *TalentID `json:"talentId,omitempty"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    Status    `json:"shiftStatus"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
