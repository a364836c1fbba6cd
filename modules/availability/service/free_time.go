package service

import (
	"sort"
	"time"

	"hangout-api/core/constants"
	"hangout-api/core/errors"
	"hangout-api/modules/availability/entity"
)

// IntersectionStrategy selects how mutual free windows are computed.
type IntersectionStrategy string

const (
	// StrategySweep folds exact pairwise interval intersections across
	// participants. Window boundaries land exactly on busy-block edges.
	StrategySweep IntersectionStrategy = "sweep"
	// StrategyGrid discretizes each day into fixed slots and keeps slots every
	// participant is free for, coalescing runs of free slots.
	StrategyGrid IntersectionStrategy = "grid"
)

// FreeTimeFinder handles the free/busy algorithms: busy-block extraction, the
// free complement per participant, and the multi-party intersection.
type FreeTimeFinder struct {
	// MinDurationMinutes - windows shorter than this are dropped
	MinDurationMinutes int
	// SlotGranularityMinutes for the grid-scan strategy
	SlotGranularityMinutes int
	// Strategy for the multi-party intersection
	Strategy IntersectionStrategy
}

// NewFreeTimeFinder creates a finder with default settings
func NewFreeTimeFinder() *FreeTimeFinder {
	return &FreeTimeFinder{
		MinDurationMinutes:     constants.DefaultMinFreeMinutes,
		SlotGranularityMinutes: constants.DefaultSlotGranularityMinutes,
		Strategy:               StrategySweep,
	}
}

// ExtractBusyBlocks filters a participant's events to those touching the given
// day and classifies each as one busy block. Overlapping events are not merged
// here; the free complement absorbs overlap on its own.
func (f *FreeTimeFinder) ExtractBusyBlocks(events []entity.BusyEvent, day time.Time) []entity.ClassifiedBlock {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	blocks := []entity.ClassifiedBlock{}
	for _, ev := range events {
		if ev.Interval.Start.Before(dayEnd) && ev.Interval.End.After(dayStart) {
			blocks = append(blocks, entity.ClassifiedBlock{
				TimeInterval: ev.Interval,
				Kind:         entity.BlockKindBusy,
				Label:        ev.Title,
			})
		}
	}
	return blocks
}

// ComputeFree returns the free complement of the busy blocks within the
// participant's wake/sleep window for the day. Busy blocks are clipped to the
// window first, so an event spilling past sleep or before wake cannot push a
// free block outside the addressable window.
func (f *FreeTimeFinder) ComputeFree(busy []entity.ClassifiedBlock, day time.Time, wakeMinutes, sleepMinutes int) []entity.ClassifiedBlock {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	window := entity.TimeInterval{
		Start: dayStart.Add(time.Duration(wakeMinutes) * time.Minute),
		End:   dayStart.Add(time.Duration(sleepMinutes) * time.Minute),
	}

	clipped := make([]entity.ClassifiedBlock, 0, len(busy))
	for _, b := range busy {
		if cut, ok := b.Clip(window); ok {
			b.TimeInterval = cut
			clipped = append(clipped, b)
		}
	}

	if len(clipped) == 0 {
		return []entity.ClassifiedBlock{{TimeInterval: window, Kind: entity.BlockKindFree}}
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	free := []entity.ClassifiedBlock{}
	cursor := window.Start
	for _, b := range clipped {
		if b.Start.After(cursor) {
			free = append(free, entity.ClassifiedBlock{
				TimeInterval: entity.TimeInterval{Start: cursor, End: b.Start},
				Kind:         entity.BlockKindFree,
			})
		}
		// Overlapping busy blocks only ever move the cursor forward, which is
		// exactly the pre-merged behavior the gap walk needs.
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if window.End.After(cursor) {
		free = append(free, entity.ClassifiedBlock{
			TimeInterval: entity.TimeInterval{Start: cursor, End: window.End},
			Kind:         entity.BlockKindFree,
		})
	}

	return free
}

// FindMutualFreeWindows computes, for each day in [startDate, endDate], the
// intervals during which every participant is simultaneously free, subject to
// the minimum-duration threshold. Output is ascending by start time.
// Participants with no events for a day simply have their whole wake/sleep
// window free; missing data never raises.
func (f *FreeTimeFinder) FindMutualFreeWindows(participants []entity.Participant, startDate, endDate time.Time) ([]entity.FreeWindow, *errors.AppError) {
	for _, p := range participants {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	windows := []entity.FreeWindow{}
	if len(participants) == 0 {
		return windows, nil
	}

	dayStart := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	dayEnd := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, endDate.Location())

	for day := dayStart; !day.After(dayEnd); day = day.AddDate(0, 0, 1) {
		frees := make([][]entity.ClassifiedBlock, 0, len(participants))
		for _, p := range participants {
			busy := f.ExtractBusyBlocks(p.BusyEvents, day)
			frees = append(frees, f.ComputeFree(busy, day, p.WakeMinutes, p.SleepMinutes))
		}

		var dayWindows []entity.TimeInterval
		switch f.Strategy {
		case StrategyGrid:
			dayWindows = f.gridScan(frees, participants, day)
		default:
			dayWindows = f.sweepIntersect(frees)
		}

		minDur := time.Duration(f.MinDurationMinutes) * time.Minute
		for _, w := range dayWindows {
			if w.Duration() >= minDur {
				windows = append(windows, entity.FreeWindow{
					TimeInterval:     w,
					ParticipantCount: len(participants),
				})
			}
		}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})
	return windows, nil
}

// sweepIntersect folds the pairwise interval intersection across all
// participants' free sets. Each fold step is the max-start/min-end overlap rule.
func (f *FreeTimeFinder) sweepIntersect(frees [][]entity.ClassifiedBlock) []entity.TimeInterval {
	if len(frees) == 0 {
		return nil
	}

	acc := make([]entity.TimeInterval, 0, len(frees[0]))
	for _, b := range frees[0] {
		acc = append(acc, b.TimeInterval)
	}

	for _, next := range frees[1:] {
		merged := []entity.TimeInterval{}
		i, j := 0, 0
		for i < len(acc) && j < len(next) {
			if ov, ok := acc[i].Overlap(next[j].TimeInterval); ok {
				merged = append(merged, ov)
			}
			// Advance whichever interval ends first.
			if acc[i].End.Before(next[j].End) {
				i++
			} else {
				j++
			}
		}
		acc = merged
		if len(acc) == 0 {
			break
		}
	}

	return acc
}

// gridScan discretizes the day's shared wake/sleep window into fixed slots and
// keeps each slot fully covered by a free block of every participant,
// coalescing consecutive free slots into one window.
func (f *FreeTimeFinder) gridScan(frees [][]entity.ClassifiedBlock, participants []entity.Participant, day time.Time) []entity.TimeInterval {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	latestWake, earliestSleep := 0, 24*60
	for _, p := range participants {
		if p.WakeMinutes > latestWake {
			latestWake = p.WakeMinutes
		}
		if p.SleepMinutes < earliestSleep {
			earliestSleep = p.SleepMinutes
		}
	}
	if latestWake >= earliestSleep {
		return nil
	}

	step := time.Duration(f.SlotGranularityMinutes) * time.Minute
	windowStart := dayStart.Add(time.Duration(latestWake) * time.Minute)
	windowEnd := dayStart.Add(time.Duration(earliestSleep) * time.Minute)

	var result []entity.TimeInterval
	var runStart *time.Time
	lastSlotEnd := windowStart

	for cur := windowStart; !cur.Add(step).After(windowEnd); cur = cur.Add(step) {
		slot := entity.TimeInterval{Start: cur, End: cur.Add(step)}
		lastSlotEnd = slot.End

		allFree := true
		for _, free := range frees {
			covered := false
			for _, b := range free {
				if b.Covers(slot) {
					covered = true
					break
				}
			}
			if !covered {
				allFree = false
				break
			}
		}

		if allFree {
			if runStart == nil {
				s := slot.Start
				runStart = &s
			}
		} else if runStart != nil {
			result = append(result, entity.TimeInterval{Start: *runStart, End: slot.Start})
			runStart = nil
		}
	}
	if runStart != nil {
		result = append(result, entity.TimeInterval{Start: *runStart, End: lastSlotEnd})
	}

	return result
}
