package service

import (
	"sort"

	"hangout-api/core/constants"
	"hangout-api/modules/discovery/entity"
)

// RankOptions are the selection knobs a call site may override.
type RankOptions struct {
	MinScore          float64
	Limit             int
	StandoutThreshold float64
}

func DefaultRankOptions() RankOptions {
	return RankOptions{
		MinScore:          constants.DefaultMinSuggestionScore,
		Limit:             constants.DefaultSuggestionLimit,
		StandoutThreshold: constants.StandoutScoreThreshold,
	}
}

// Rank filters out candidates below the score floor, sorts descending by total
// score (stable, so input order breaks ties deterministically), truncates to
// the limit, and flags standout matches for UI emphasis.
func Rank(scored []entity.ScoredActivity, opts RankOptions) []entity.ScoredActivity {
	if opts.Limit <= 0 {
		opts.Limit = constants.DefaultSuggestionLimit
	}
	if opts.StandoutThreshold <= 0 {
		opts.StandoutThreshold = constants.StandoutScoreThreshold
	}

	kept := make([]entity.ScoredActivity, 0, len(scored))
	for _, s := range scored {
		if s.TotalScore >= opts.MinScore {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].TotalScore > kept[j].TotalScore
	})

	if len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	for i := range kept {
		kept[i].Standout = kept[i].TotalScore >= opts.StandoutThreshold
	}

	return kept
}
