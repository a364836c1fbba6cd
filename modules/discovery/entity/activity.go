package entity

import "time"

// CandidateActivity is the canonical shape every supplier payload is
// normalized into before scoring. The scorer treats it as read-only.
type CandidateActivity struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Description   string     `json:"description,omitempty"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	EstimatedCost float64    `json:"estimated_cost"` // 0 means free
	Rating        float64    `json:"rating"`         // 0..5, 0 when unknown
	RatingCount   int        `json:"rating_count"`
	Indoor        *bool      `json:"indoor,omitempty"` // nil when unknown
	StartTime     *time.Time `json:"start_time,omitempty"`
}

// ScoreBreakdown carries the per-factor contributions for auditability.
// Each value is non-negative and capped by its weight.
type ScoreBreakdown struct {
	Preference float64 `json:"preference"`
	TimeFit    float64 `json:"time_fit"`
	Weather    float64 `json:"weather"`
	Budget     float64 `json:"budget"`
	Proximity  float64 `json:"proximity"`
	Popularity float64 `json:"popularity"`
}

func (b ScoreBreakdown) Sum() float64 {
	return b.Preference + b.TimeFit + b.Weather + b.Budget + b.Proximity + b.Popularity
}

// ScoredActivity pairs a candidate with its breakdown and clamped total.
type ScoredActivity struct {
	Activity   CandidateActivity `json:"activity"`
	Breakdown  ScoreBreakdown    `json:"breakdown"`
	TotalScore float64           `json:"total_score"`
	Standout   bool              `json:"standout"`
}

// ScoreWeights is the single scoring policy, injected per call site rather
// than forked per formula. Caps sum to 100; MaxTotal keeps the emitted score
// strictly below 100.
type ScoreWeights struct {
	PreferenceCap float64 `json:"preference_cap"`
	TimeFitCap    float64 `json:"time_fit_cap"`
	WeatherCap    float64 `json:"weather_cap"`
	BudgetCap     float64 `json:"budget_cap"`
	ProximityCap  float64 `json:"proximity_cap"`
	PopularityCap float64 `json:"popularity_cap"`
	MaxTotal      float64 `json:"max_total"`
}

// DefaultScoreWeights is the documented reference policy: preference affinity
// contributes the most, and no total ever reaches 100.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		PreferenceCap: 30,
		TimeFitCap:    20,
		WeatherCap:    15,
		BudgetCap:     15,
		ProximityCap:  10,
		PopularityCap: 10,
		MaxTotal:      95,
	}
}

// WeatherConditions is the snapshot consumed by the weather factor.
type WeatherConditions struct {
	TempCelsius float64 `json:"temp_celsius"`
	IsRaining   bool    `json:"is_raining"`
}

// ScoringContext carries the user-side signals for one scoring pass.
// Weather is optional; a nil snapshot scores the neutral middle tier.
type ScoringContext struct {
	Weather             *WeatherConditions
	BudgetMax           float64
	PreferredCategories []string
	HistoryCategories   []string
	OriginLatitude      float64
	OriginLongitude     float64
}
