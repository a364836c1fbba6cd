package service

import (
	"testing"

	"hangout-api/modules/discovery/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredWith(id string, total float64) entity.ScoredActivity {
	return entity.ScoredActivity{
		Activity:   entity.CandidateActivity{ID: id},
		TotalScore: total,
	}
}

func TestRankSortsDescendingAndFilters(t *testing.T) {
	scored := []entity.ScoredActivity{
		scoredWith("low", 20),
		scoredWith("high", 90),
		scoredWith("mid", 55),
		scoredWith("floor", 35),
	}

	ranked := Rank(scored, DefaultRankOptions())

	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Activity.ID)
	assert.Equal(t, "mid", ranked[1].Activity.ID)
	assert.Equal(t, "floor", ranked[2].Activity.ID)
}

func TestRankScoreFloorIsInclusive(t *testing.T) {
	scored := []entity.ScoredActivity{
		scoredWith("exactly", 35),
		scoredWith("under", 34.9),
	}

	ranked := Rank(scored, DefaultRankOptions())

	require.Len(t, ranked, 1)
	assert.Equal(t, "exactly", ranked[0].Activity.ID)
}

func TestRankTruncatesToLimit(t *testing.T) {
	var scored []entity.ScoredActivity
	for i := 0; i < 25; i++ {
		scored = append(scored, scoredWith("a", 40+float64(i)))
	}

	ranked := Rank(scored, DefaultRankOptions())

	require.Len(t, ranked, 10)
	// Highest scores survive truncation.
	assert.Equal(t, 64.0, ranked[0].TotalScore)
	assert.Equal(t, 55.0, ranked[9].TotalScore)
}

func TestRankStableOnTies(t *testing.T) {
	scored := []entity.ScoredActivity{
		scoredWith("first", 50),
		scoredWith("second", 50),
		scoredWith("third", 50),
	}

	ranked := Rank(scored, DefaultRankOptions())

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Activity.ID)
	assert.Equal(t, "second", ranked[1].Activity.ID)
	assert.Equal(t, "third", ranked[2].Activity.ID)
}

func TestRankFlagsStandouts(t *testing.T) {
	scored := []entity.ScoredActivity{
		scoredWith("standout", 88),
		scoredWith("threshold", 85),
		scoredWith("ordinary", 70),
	}

	ranked := Rank(scored, DefaultRankOptions())

	require.Len(t, ranked, 3)
	assert.True(t, ranked[0].Standout)
	assert.True(t, ranked[1].Standout)
	assert.False(t, ranked[2].Standout)
}

func TestRankCustomOptions(t *testing.T) {
	scored := []entity.ScoredActivity{
		scoredWith("a", 80),
		scoredWith("b", 60),
		scoredWith("c", 40),
	}

	ranked := Rank(scored, RankOptions{MinScore: 50, Limit: 1, StandoutThreshold: 75})

	require.Len(t, ranked, 1)
	assert.Equal(t, "a", ranked[0].Activity.ID)
	assert.True(t, ranked[0].Standout)
}
