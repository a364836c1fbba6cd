package service

import (
	"math"
	"strings"

	availEntity "hangout-api/modules/availability/entity"
	"hangout-api/modules/discovery/entity"

	"github.com/gosimple/slug"
)

// ActivityScorer computes the composite match score for one candidate against
// one free window. Factors are independently capped by the injected weights
// and the clamped total never reaches 100.
type ActivityScorer struct {
	weights entity.ScoreWeights
}

func NewActivityScorer(weights entity.ScoreWeights) *ActivityScorer {
	return &ActivityScorer{weights: weights}
}

var outdoorKeywords = []string{
	"hike", "hiking", "park", "beach", "trail", "garden", "picnic",
	"outdoor", "bike", "kayak", "climb", "walk", "festival",
}

var indoorKeywords = []string{
	"museum", "cinema", "movie", "theater", "theatre", "cafe", "coffee",
	"restaurant", "bar", "arcade", "bowling", "gallery", "indoor", "escape room",
}

// Score returns the scored candidate with its full factor breakdown.
func (s *ActivityScorer) Score(activity entity.CandidateActivity, window availEntity.FreeWindow, sctx entity.ScoringContext) entity.ScoredActivity {
	breakdown := entity.ScoreBreakdown{
		Preference: s.preferenceScore(activity, sctx),
		TimeFit:    s.timeFitScore(activity, window),
		Weather:    s.weatherScore(activity, sctx.Weather),
		Budget:     s.budgetScore(activity, sctx.BudgetMax),
		Proximity:  s.proximityScore(activity, sctx),
		Popularity: s.popularityScore(activity),
	}

	total := breakdown.Sum()
	if total > s.weights.MaxTotal {
		total = s.weights.MaxTotal
	}
	if total < 0 {
		total = 0
	}

	return entity.ScoredActivity{
		Activity:   activity,
		Breakdown:  breakdown,
		TotalScore: total,
	}
}

// preferenceScore is tiered: convergent evidence (stated preference confirmed
// by rated history) earns the full cap, a single signal earns partial credit,
// and everything else keeps a fixed floor rather than zero.
func (s *ActivityScorer) preferenceScore(activity entity.CandidateActivity, sctx entity.ScoringContext) float64 {
	category := slug.Make(activity.Category)

	inPreferred := containsSlugged(sctx.PreferredCategories, category)
	inHistory := containsSlugged(sctx.HistoryCategories, category)

	switch {
	case inPreferred && inHistory:
		return s.weights.PreferenceCap
	case inPreferred || inHistory:
		return s.weights.PreferenceCap * 0.6
	default:
		return s.weights.PreferenceCap * 0.2
	}
}

// timeFitScore gives full credit inside the window and steps down with the
// day distance between the activity and the window start, floored above zero
// so near-miss timing is penalized, not discarded. Activities without a fixed
// start time are schedulable anywhere in the window.
func (s *ActivityScorer) timeFitScore(activity entity.CandidateActivity, window availEntity.FreeWindow) float64 {
	if activity.StartTime == nil {
		return s.weights.TimeFitCap
	}
	if window.Contains(*activity.StartTime) {
		return s.weights.TimeFitCap
	}

	dayDistance := int(math.Abs(activity.StartTime.Sub(window.Start).Hours()) / 24)
	switch {
	case dayDistance == 0:
		return s.weights.TimeFitCap * 0.75
	case dayDistance == 1:
		return s.weights.TimeFitCap * 0.5
	case dayDistance <= 3:
		return s.weights.TimeFitCap * 0.3
	default:
		return s.weights.TimeFitCap * 0.1
	}
}

// weatherScore pairs the activity's indoor/outdoor nature against conditions:
// matching pairing earns the cap, mismatch the bottom tier, and unknown
// conditions or nature the middle tier.
func (s *ActivityScorer) weatherScore(activity entity.CandidateActivity, weather *entity.WeatherConditions) float64 {
	indoor := inferIndoor(activity)
	if weather == nil || indoor == nil {
		return s.weights.WeatherCap * 0.6
	}

	if weather.IsRaining {
		if *indoor {
			return s.weights.WeatherCap
		}
		return s.weights.WeatherCap * 0.2
	}

	if *indoor {
		return s.weights.WeatherCap * 0.8
	}
	return s.weights.WeatherCap
}

// budgetScore never disqualifies: at or under budget (or free) earns the cap,
// overshoot tiers at 120% and 150% earn graduated credit, anything beyond
// keeps a minimal floor.
func (s *ActivityScorer) budgetScore(activity entity.CandidateActivity, budgetMax float64) float64 {
	if activity.EstimatedCost <= 0 {
		return s.weights.BudgetCap
	}
	if budgetMax <= 0 {
		// No budget stated: cost alone is not a penalty.
		return s.weights.BudgetCap
	}

	ratio := activity.EstimatedCost / budgetMax
	switch {
	case ratio <= 1.0:
		return s.weights.BudgetCap
	case ratio <= 1.2:
		return s.weights.BudgetCap * 0.7
	case ratio <= 1.5:
		return s.weights.BudgetCap * 0.4
	default:
		return s.weights.BudgetCap * 0.15
	}
}

// proximityScore is distance-decayed over fixed bands, never negative.
func (s *ActivityScorer) proximityScore(activity entity.CandidateActivity, sctx entity.ScoringContext) float64 {
	if sctx.OriginLatitude == 0 && sctx.OriginLongitude == 0 {
		return s.weights.ProximityCap * 0.5
	}

	km := haversineKm(sctx.OriginLatitude, sctx.OriginLongitude, activity.Latitude, activity.Longitude)
	switch {
	case km <= 1:
		return s.weights.ProximityCap
	case km <= 3:
		return s.weights.ProximityCap * 0.8
	case km <= 10:
		return s.weights.ProximityCap * 0.5
	case km <= 25:
		return s.weights.ProximityCap * 0.25
	default:
		return s.weights.ProximityCap * 0.1
	}
}

// popularityScore derives from the supplier's rating signal, with a floor for
// unrated venues so new places are not buried.
func (s *ActivityScorer) popularityScore(activity entity.CandidateActivity) float64 {
	if activity.Rating <= 0 {
		return s.weights.PopularityCap * 0.3
	}

	score := (activity.Rating / 5.0) * s.weights.PopularityCap
	if score > s.weights.PopularityCap {
		score = s.weights.PopularityCap
	}
	return score
}

func containsSlugged(categories []string, slugged string) bool {
	for _, c := range categories {
		if slug.Make(c) == slugged {
			return true
		}
	}
	return false
}

// inferIndoor uses the explicit hint when present, otherwise keyword-matches
// the category and description. nil means unknown.
func inferIndoor(activity entity.CandidateActivity) *bool {
	if activity.Indoor != nil {
		return activity.Indoor
	}

	text := strings.ToLower(activity.Category + " " + activity.Description)
	for _, kw := range indoorKeywords {
		if strings.Contains(text, kw) {
			v := true
			return &v
		}
	}
	for _, kw := range outdoorKeywords {
		if strings.Contains(text, kw) {
			v := false
			return &v
		}
	}
	return nil
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
