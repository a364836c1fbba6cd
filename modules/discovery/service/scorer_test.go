package service

import (
	"testing"
	"time"

	availEntity "hangout-api/modules/availability/entity"
	"hangout-api/modules/discovery/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func testWindow() availEntity.FreeWindow {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return availEntity.FreeWindow{
		TimeInterval:     availEntity.TimeInterval{Start: start, End: start.Add(4 * time.Hour)},
		ParticipantCount: 2,
	}
}

func TestScoreAllFactorsMaxedClampsBelowHundred(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()
	startTime := window.Start.Add(time.Hour)

	perfect := entity.CandidateActivity{
		ID:            "a1",
		Name:          "Climbing Gym",
		Category:      "Climbing",
		EstimatedCost: 0,
		Rating:        5.0,
		RatingCount:   2000,
		Latitude:      40.0,
		Longitude:     -73.0,
		Indoor:        boolPtr(true),
		StartTime:     &startTime,
	}
	sctx := entity.ScoringContext{
		Weather:             &entity.WeatherConditions{IsRaining: true},
		BudgetMax:           50,
		PreferredCategories: []string{"Climbing"},
		HistoryCategories:   []string{"climbing"},
		OriginLatitude:      40.0,
		OriginLongitude:     -73.0,
	}

	result := scorer.Score(perfect, window, sctx)

	// Raw factor sum is 100; the emitted total must clamp strictly below it.
	assert.Equal(t, 100.0, result.Breakdown.Sum())
	assert.Equal(t, 95.0, result.TotalScore)
	assert.Less(t, result.TotalScore, 100.0)
}

func TestScoreIsBounded(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()
	far := window.Start.AddDate(0, 0, 10)

	candidates := []entity.CandidateActivity{
		{},
		{Category: "opera", EstimatedCost: 9999, Rating: 0.1, StartTime: &far},
		{Category: "hiking", EstimatedCost: 5, Rating: 4.9, Latitude: 89, Longitude: 179},
	}
	contexts := []entity.ScoringContext{
		{},
		{Weather: &entity.WeatherConditions{IsRaining: true}, BudgetMax: 1},
		{BudgetMax: 100, PreferredCategories: []string{"hiking"}, OriginLatitude: -89, OriginLongitude: -179},
	}

	for _, c := range candidates {
		for _, sctx := range contexts {
			result := scorer.Score(c, window, sctx)
			assert.GreaterOrEqual(t, result.TotalScore, 0.0)
			assert.Less(t, result.TotalScore, 100.0)
		}
	}
}

func TestPreferenceScoreTiers(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()

	activity := entity.CandidateActivity{Category: "Live Music"}

	both := scorer.Score(activity, window, entity.ScoringContext{
		PreferredCategories: []string{"live music"},
		HistoryCategories:   []string{"Live Music"},
	})
	assert.Equal(t, 30.0, both.Breakdown.Preference)

	one := scorer.Score(activity, window, entity.ScoringContext{
		PreferredCategories: []string{"live music"},
	})
	assert.Equal(t, 18.0, one.Breakdown.Preference)

	neither := scorer.Score(activity, window, entity.ScoringContext{})
	assert.Equal(t, 6.0, neither.Breakdown.Preference)
}

func TestTimeFitScoreStepsDownWithDayDistance(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()

	scoreAt := func(start time.Time) float64 {
		a := entity.CandidateActivity{StartTime: &start}
		return scorer.Score(a, window, entity.ScoringContext{}).Breakdown.TimeFit
	}

	inWindow := window.Start.Add(time.Hour)
	sameDay := window.End.Add(2 * time.Hour)
	nextDay := window.Start.AddDate(0, 0, 1)
	threeDays := window.Start.AddDate(0, 0, 3)
	weekOut := window.Start.AddDate(0, 0, 7)

	assert.Equal(t, 20.0, scoreAt(inWindow))
	assert.Equal(t, 15.0, scoreAt(sameDay))
	assert.Equal(t, 10.0, scoreAt(nextDay))
	assert.Equal(t, 6.0, scoreAt(threeDays))
	assert.Equal(t, 2.0, scoreAt(weekOut))

	// No fixed start time means schedulable anywhere in the window.
	flexible := entity.CandidateActivity{}
	assert.Equal(t, 20.0, scorer.Score(flexible, window, entity.ScoringContext{}).Breakdown.TimeFit)
}

func TestWeatherScorePairings(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()
	rain := &entity.WeatherConditions{IsRaining: true}
	clear := &entity.WeatherConditions{IsRaining: false}

	indoor := entity.CandidateActivity{Indoor: boolPtr(true)}
	outdoor := entity.CandidateActivity{Indoor: boolPtr(false)}
	unknown := entity.CandidateActivity{}

	cases := []struct {
		name     string
		activity entity.CandidateActivity
		weather  *entity.WeatherConditions
		want     float64
	}{
		{"rain indoor", indoor, rain, 15.0},
		{"rain outdoor", outdoor, rain, 3.0},
		{"clear outdoor", outdoor, clear, 15.0},
		{"clear indoor", indoor, clear, 12.0},
		{"no weather", indoor, nil, 9.0},
		{"unknown nature", unknown, rain, 9.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scorer.Score(tc.activity, window, entity.ScoringContext{Weather: tc.weather}).Breakdown.Weather
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWeatherScoreInfersNatureFromText(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()
	rain := entity.ScoringContext{Weather: &entity.WeatherConditions{IsRaining: true}}

	museum := entity.CandidateActivity{Category: "Museum"}
	hike := entity.CandidateActivity{Category: "Day Trips", Description: "Scenic trail hike"}

	assert.Equal(t, 15.0, scorer.Score(museum, window, rain).Breakdown.Weather)
	assert.Equal(t, 3.0, scorer.Score(hike, window, rain).Breakdown.Weather)
}

func TestBudgetScoreTiersNeverDisqualify(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()
	sctx := entity.ScoringContext{BudgetMax: 100}

	costScore := func(cost float64) float64 {
		a := entity.CandidateActivity{EstimatedCost: cost}
		return scorer.Score(a, window, sctx).Breakdown.Budget
	}

	assert.Equal(t, 15.0, costScore(0))   // free
	assert.Equal(t, 15.0, costScore(100)) // at budget
	assert.Equal(t, 10.5, costScore(115))
	assert.Equal(t, 6.0, costScore(140))
	assert.InDelta(t, 2.25, costScore(500), 0.001)
	assert.Greater(t, costScore(500), 0.0)

	// No budget stated: cost alone is not a penalty.
	noBudget := scorer.Score(entity.CandidateActivity{EstimatedCost: 500}, window, entity.ScoringContext{})
	assert.Equal(t, 15.0, noBudget.Breakdown.Budget)
}

func TestProximityScoreBands(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()
	sctx := entity.ScoringContext{OriginLatitude: 40.7128, OriginLongitude: -74.0060}

	// Roughly 0.11 km per 0.001 degree of latitude.
	atOrigin := entity.CandidateActivity{Latitude: 40.7128, Longitude: -74.0060}
	nearby := entity.CandidateActivity{Latitude: 40.7308, Longitude: -74.0060}   // ~2 km
	crossTown := entity.CandidateActivity{Latitude: 40.7828, Longitude: -74.0060} // ~8 km
	farAway := entity.CandidateActivity{Latitude: 41.7128, Longitude: -74.0060}   // ~111 km

	assert.Equal(t, 10.0, scorer.Score(atOrigin, window, sctx).Breakdown.Proximity)
	assert.Equal(t, 8.0, scorer.Score(nearby, window, sctx).Breakdown.Proximity)
	assert.Equal(t, 5.0, scorer.Score(crossTown, window, sctx).Breakdown.Proximity)
	assert.Equal(t, 1.0, scorer.Score(farAway, window, sctx).Breakdown.Proximity)

	// Unknown origin gets the neutral middle.
	noOrigin := scorer.Score(farAway, window, entity.ScoringContext{})
	assert.Equal(t, 5.0, noOrigin.Breakdown.Proximity)
}

func TestPopularityScoreFromRating(t *testing.T) {
	scorer := NewActivityScorer(entity.DefaultScoreWeights())
	window := testWindow()

	top := scorer.Score(entity.CandidateActivity{Rating: 5}, window, entity.ScoringContext{})
	assert.Equal(t, 10.0, top.Breakdown.Popularity)

	mid := scorer.Score(entity.CandidateActivity{Rating: 3.5}, window, entity.ScoringContext{})
	assert.Equal(t, 7.0, mid.Breakdown.Popularity)

	// Unrated venues keep a floor instead of zero.
	unrated := scorer.Score(entity.CandidateActivity{}, window, entity.ScoringContext{})
	assert.Equal(t, 3.0, unrated.Breakdown.Popularity)
}

func TestHaversineKnownDistance(t *testing.T) {
	// New York to Philadelphia, roughly 130 km.
	km := haversineKm(40.7128, -74.0060, 39.9526, -75.1652)
	require.InDelta(t, 130, km, 5)
}
