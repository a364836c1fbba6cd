package dto

import (
	"time"

	"hangout-api/modules/discovery/entity"
)

type SuggestionsRequest struct {
	FriendIDs []string `json:"friend_ids"`

	// Optional explicit window; when omitted the first mutual free window for
	// the party over the next days is used.
	WindowStart *time.Time `json:"window_start"`
	WindowEnd   *time.Time `json:"window_end"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
	Category  string  `json:"category"`

	BudgetMax           float64  `json:"budget_max"`
	PreferredCategories []string `json:"preferred_categories"`
	HistoryCategories   []string `json:"history_categories"`

	Limit int `json:"limit"`
}

type WindowDTO struct {
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	ParticipantCount int       `json:"participant_count"`
}

type SuggestionDTO struct {
	Activity   entity.CandidateActivity `json:"activity"`
	Breakdown  entity.ScoreBreakdown    `json:"breakdown"`
	TotalScore float64                  `json:"total_score"`
	Standout   bool                     `json:"standout"`
}

type SuggestionsResponse struct {
	Window      WindowDTO       `json:"window"`
	Suggestions []SuggestionDTO `json:"suggestions"`
}

func ToSuggestionDTO(s entity.ScoredActivity) SuggestionDTO {
	return SuggestionDTO{
		Activity:   s.Activity,
		Breakdown:  s.Breakdown,
		TotalScore: s.TotalScore,
		Standout:   s.Standout,
	}
}
