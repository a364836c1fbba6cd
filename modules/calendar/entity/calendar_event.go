package entity

import (
	"time"

	"hangout-api/core/entity"

	"github.com/google/uuid"
)

// CalendarEvent is one busy entry on a user's calendar, ingested from a
// connected provider or created in the app.
type CalendarEvent struct {
	entity.BaseEntity
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Source    string    `db:"source" json:"source"` // "google" | "manual"
	ExternalID *string  `db:"external_id" json:"external_id,omitempty"`
}

// SchedulePreferences holds a user's daily wake/sleep window as minutes after
// midnight. Unset rows never exist; callers must save prefs before planning.
type SchedulePreferences struct {
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	WakeMinutes  int       `db:"wake_minutes" json:"wake_minutes"`
	SleepMinutes int       `db:"sleep_minutes" json:"sleep_minutes"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
