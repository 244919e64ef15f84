package domain

import "errors"

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrShiftNotFound = errors.New("shift not found")

	// Job creation rules, checked in this order.
	ErrStartInPast      = errors.New("start date must not be in the past")
	ErrEndNotAfterStart = errors.New("end date must be after start date")
	ErrShiftTooShort    = errors.New("shift shorter than the minimum length")
	ErrShiftTooLong     = errors.New("shift longer than the configured limit")

	// Booking rules.
	ErrAlreadyBooked       = errors.New("shift has already been booked")
	ErrTimeConflict        = errors.New("shifts are conflicting")
	ErrRestPeriodViolation = errors.New("rest period between shifts violated")
	ErrNotBookedYet        = errors.New("shift has not been booked")

	// ErrVersionConflict reports a lost optimistic-concurrency race; the
	// caller decides whether to retry.
	ErrVersionConflict = errors.New("version conflict")
)

// IsBusinessRuleViolation reports whether err is one of the scheduling
// rules rather than a missing record or an infrastructure failure.
func IsBusinessRuleViolation(err error) bool {
	for _, rule := range []error{
		ErrStartInPast,
		ErrEndNotAfterStart,
		ErrShiftTooShort,
		ErrShiftTooLong,
		ErrAlreadyBooked,
		ErrTimeConflict,
		ErrRestPeriodViolation,
		ErrNotBookedYet,
	} {
		if errors.Is(err, rule) {
			return true
		}
	}
	return false
}
