package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgallego/shiftwise/internal/adapters/memory"
	"github.com/rgallego/shiftwise/internal/config"
	"github.com/rgallego/shiftwise/internal/core/domain"
	"github.com/rgallego/shiftwise/internal/core/services"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	scheduling := config.Scheduling{DayStartHour: 8, DayEndHour: 17, ShiftLimitHours: 8, BreakHours: 2}
	paging := config.Paging{JobPageSize: 10, ShiftPageSize: 10}

	jobSvc := services.NewJobService(logger, store, scheduling, paging)
	shiftSvc := services.NewShiftService(logger, store, scheduling, paging)

	srv, err := NewServer(logger, jobSvc, shiftSvc, scheduling)
	require.NoError(t, err)
	return srv.Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createJob(t *testing.T, handler http.Handler) string {
	t.Helper()
	// Two days out at 10:00 UTC so the job always fits a single day.
	day := time.Now().UTC().AddDate(0, 0, 2).Truncate(24 * time.Hour)
	start := day.Add(10 * time.Hour)
	rec := doJSON(t, handler, http.MethodPost, "/v1/jobs", map[string]any{
		"companyId": uuid.NewString(),
		"start":     start.Format(time.RFC3339),
		"end":       start.Add(4 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data struct {
			JobID string `json:"jobId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.JobID)
	return resp.Data.JobID
}

func jobShifts(t *testing.T, handler http.Handler, jobID string) []domain.Shift {
	t.Helper()
	rec := doJSON(t, handler, http.MethodGet, "/v1/shifts/"+jobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Shifts []domain.Shift `json:"shifts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Data.Shifts
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	handler := newTestServer(t)
	rec := doJSON(t, handler, http.MethodGet, "/v1/openapi.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shiftwise")
}

func TestCreateJob_Endpoint(t *testing.T) {
	handler := newTestServer(t)
	jobID := createJob(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/v1/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var job domain.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.Equal(t, domain.StatusBooked, job.Status)
	assert.NotEmpty(t, job.Shifts)
}

func TestCreateJob_FieldValidation(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/v1/jobs", map[string]any{
		"companyId": "not-a-uuid",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		ErrorID string   `json:"errorId"`
		Message []string `json:"message"`
		Path    string   `json:"path"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ErrorID)
	assert.Equal(t, "/v1/jobs", resp.Path)
	assert.Contains(t, resp.Message, "companyId must be a UUID")
	assert.Contains(t, resp.Message, "start should not be empty")
	assert.Contains(t, resp.Message, "end should not be empty")
}

func TestCreateJob_BusinessRules(t *testing.T) {
	handler := newTestServer(t)
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)

	cases := []struct {
		name    string
		start   time.Time
		end     time.Time
		message string
	}{
		{"start in past", time.Now().UTC().Add(-time.Hour), start, "The start date must not be in the past"},
		{"end before start", start, start.Add(-time.Hour), "The end date must be after start date"},
		{"too short", start, start.Add(time.Hour), "The shift should not be less than 2 hours."},
		{"too long", start, start.Add(9 * time.Hour), "The shift should not be more than 8 hours."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/v1/jobs", map[string]any{
				"companyId": uuid.NewString(),
				"start":     tc.start.Format(time.RFC3339),
				"end":       tc.end.Format(time.RFC3339),
			})
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.message)
		})
	}
}

func TestGetJob_NotFoundAndBadID(t *testing.T) {
	handler := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/v1/jobs/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/v1/jobs/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListJobs(t *testing.T) {
	handler := newTestServer(t)
	createJob(t, handler)
	createJob(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/v1/jobs?pageSize=1&pageNumber=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp jobListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Jobs, 1)
}

func TestCancelJob_Endpoint(t *testing.T) {
	handler := newTestServer(t)
	jobID := createJob(t, handler)

	rec := doJSON(t, handler, http.MethodPatch, "/v1/jobs/"+jobID+"/cancel", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	for _, shift := range jobShifts(t, handler, jobID) {
		assert.Equal(t, domain.StatusCancel, shift.Status)
	}

	rec = doJSON(t, handler, http.MethodPatch, "/v1/jobs/"+uuid.NewString()+"/cancel", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingFlow(t *testing.T) {
	handler := newTestServer(t)
	jobID := createJob(t, handler)

	shifts := jobShifts(t, handler, jobID)
	require.NotEmpty(t, shifts)
	shiftID := string(shifts[0].ID)
	talent := uuid.NewString()

	rec := doJSON(t, handler, http.MethodPatch, "/v1/shifts/"+shiftID+"/book", map[string]any{"talent": talent})
	assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// Booking the same shift twice fails.
	rec = doJSON(t, handler, http.MethodPatch, "/v1/shifts/"+shiftID+"/book", map[string]any{"talent": talent})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "The shift has already been booked.")

	// Talent-initiated cancellation opens a replacement slot.
	rec = doJSON(t, handler, http.MethodPatch, "/v1/shifts/talent/"+talent+"/cancel", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	after := jobShifts(t, handler, jobID)
	assert.Len(t, after, len(shifts)+1)

	pending := 0
	for _, shift := range after {
		if shift.Status == domain.StatusPending {
			pending++
		}
	}
	assert.Equal(t, 1, pending, "exactly one replacement slot is pending")
}

func TestCancelShift_Endpoint(t *testing.T) {
	handler := newTestServer(t)
	jobID := createJob(t, handler)
	shifts := jobShifts(t, handler, jobID)
	require.NotEmpty(t, shifts)
	shiftID := string(shifts[0].ID)

	// Cancelling an unbooked shift is rejected.
	rec := doJSON(t, handler, http.MethodPatch, "/v1/shifts/"+shiftID+"/cancel", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shift has not been booked.")

	rec = doJSON(t, handler, http.MethodPatch, "/v1/shifts/"+shiftID+"/book", map[string]any{"talent": uuid.NewString()})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, http.MethodPatch, "/v1/shifts/"+shiftID+"/cancel", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListShifts_Endpoint(t *testing.T) {
	handler := newTestServer(t)
	jobID := createJob(t, handler)
	want := len(jobShifts(t, handler, jobID))

	rec := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/v1/shifts?pageSize=%d", want), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var shifts []domain.Shift
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shifts))
	assert.Len(t, shifts, want)
}
