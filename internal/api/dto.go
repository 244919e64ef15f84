package api

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rgallego/shiftwise/internal/core/domain"
)

// JobRequest is the body of POST /v1/jobs.
type JobRequest struct {
	CompanyID string    `json:"companyId" validate:"required,uuid4"`
	Start     time.Time `json:"start" validate:"required"`
	End       time.Time `json:"end" validate:"required"`
}

// BookTalentRequest is the body of PATCH /v1/shifts/{shiftID}/book.
type BookTalentRequest struct {
	Talent string `json:"talent" validate:"required,uuid4"`
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type jobCreatedResponse struct {
	JobID domain.JobID `json:"jobId"`
}

type jobSummary struct {
	ID        domain.JobID     `json:"id"`
	CompanyID domain.CompanyID `json:"companyId"`
	StartTime time.Time        `json:"startTime"`
	EndTime   time.Time        `json:"endTime"`
	Status    domain.Status    `json:"jobStatus"`
}

type jobListResponse struct {
	Total int          `json:"total"`
	Jobs  []jobSummary `json:"jobs"`
}

type shiftListEnvelope struct {
	Shifts []domain.Shift `json:"shifts"`
}

func summarize(jobs []domain.Job) []jobSummary {
	out := make([]jobSummary, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, jobSummary{
			ID:        job.ID,
			CompanyID: job.CompanyID,
			StartTime: job.StartTime,
			EndTime:   job.EndTime,
			Status:    job.Status,
		})
	}
	return out
}

// fieldMessages flattens validator errors into one human-readable
// message per failed field, using the JSON field names.
func fieldMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s should not be empty", field))
		case "uuid4":
			msgs = append(msgs, fmt.Sprintf("%s must be a UUID", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return msgs
}

func jsonFieldName(structField string) string {
	switch structField {
	case "CompanyID":
		return "companyId"
	case "Start":
		return "start"
	case "End":
		return "end"
	case "Talent":
		return "talent"
	}
	return structField
}
