package dto

import "time"

type CalendarConnectionResponse struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	CalendarEmail string `json:"calendar_email"`
	IsActive      bool   `json:"is_active"`
	ConnectedAt   string `json:"connected_at"`
}

type ConnectGoogleRequest struct {
	Code        string `json:"code" validate:"required"`
	RedirectURI string `json:"redirect_uri"`
}

type CreateEventRequest struct {
	Title     string `json:"title" validate:"required"`
	StartTime string `json:"start_time" validate:"required"` // RFC3339
	EndTime   string `json:"end_time" validate:"required"`   // RFC3339
}

type EventResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Source    string    `json:"source"`
}

type SchedulePreferencesRequest struct {
	WakeTime  string `json:"wake_time" validate:"required"`  // "08:00"
	SleepTime string `json:"sleep_time" validate:"required"` // "22:00"
}

type SchedulePreferencesResponse struct {
	WakeTime  string `json:"wake_time"`
	SleepTime string `json:"sleep_time"`
}
