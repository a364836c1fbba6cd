package dto

import (
	"time"

	"hangout-api/modules/availability/entity"
)

type FindWindowsRequest struct {
	FriendIDs          []string `json:"friend_ids" validate:"required"`
	StartDate          string   `json:"start_date"` // "2006-01-02", defaults to today
	EndDate            string   `json:"end_date"`   // defaults to start + 7 days
	MinDurationMinutes int      `json:"min_duration_minutes"`
}

type FreeWindowDTO struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	DurationMinutes  int       `json:"duration_minutes"`
	ParticipantCount int       `json:"participant_count"`
}

type FindWindowsResponse struct {
	Windows []FreeWindowDTO `json:"windows"`
	Total   int             `json:"total"`
}

func ToFreeWindowDTO(w entity.FreeWindow) FreeWindowDTO {
	return FreeWindowDTO{
		Start:            w.Start,
		End:              w.End,
		DurationMinutes:  int(w.Duration().Minutes()),
		ParticipantCount: w.ParticipantCount,
	}
}
