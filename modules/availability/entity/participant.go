package entity

import (
	"hangout-api/core/errors"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

// BusyEvent is one calendar entry feeding the busy-block extraction.
type BusyEvent struct {
	Title    string       `json:"title"`
	Interval TimeInterval `json:"interval"`
}

// Participant is one person's calendar state for the intersection engine.
// Wake and sleep are minutes after midnight; the engine reads, never mutates.
type Participant struct {
	ID           uuid.UUID   `json:"id"`
	WakeMinutes  int         `json:"wake_minutes"`
	SleepMinutes int         `json:"sleep_minutes"`
	BusyEvents   []BusyEvent `json:"busy_events"`
}

// Validate rejects missing or cross-midnight wake/sleep windows. The engine does
// not guess defaults; callers set them before calling in.
func (p Participant) Validate() *errors.AppError {
	if p.WakeMinutes < 0 || p.SleepMinutes <= 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "participant wake/sleep window not set", nil)
	}
	if p.SleepMinutes > minutesPerDay {
		return errors.NewAppError(errors.ErrInvalidInput, "participant sleep time beyond end of day", nil)
	}
	if p.WakeMinutes >= p.SleepMinutes {
		return errors.NewAppError(errors.ErrInvalidInput, "participant wake time must be before sleep time", nil)
	}
	return nil
}
