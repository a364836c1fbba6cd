package service

import (
	"testing"
	"time"

	"hangout-api/modules/availability/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func busyEvent(title string, startHour, startMin, endHour, endMin int) entity.BusyEvent {
	return entity.BusyEvent{
		Title:    title,
		Interval: entity.TimeInterval{Start: at(startHour, startMin), End: at(endHour, endMin)},
	}
}

func participant(wakeMinutes, sleepMinutes int, events ...entity.BusyEvent) entity.Participant {
	return entity.Participant{
		ID:           uuid.New(),
		WakeMinutes:  wakeMinutes,
		SleepMinutes: sleepMinutes,
		BusyEvents:   events,
	}
}

func TestExtractBusyBlocksFiltersToDay(t *testing.T) {
	finder := NewFreeTimeFinder()

	events := []entity.BusyEvent{
		busyEvent("standup", 9, 0, 9, 30),
		{Title: "yesterday", Interval: entity.TimeInterval{
			Start: day.Add(-10 * time.Hour), End: day.Add(-9 * time.Hour),
		}},
		{Title: "overnight", Interval: entity.TimeInterval{
			Start: day.Add(-1 * time.Hour), End: day.Add(1 * time.Hour),
		}},
	}

	blocks := finder.ExtractBusyBlocks(events, day)

	require.Len(t, blocks, 2)
	assert.Equal(t, "standup", blocks[0].Label)
	assert.Equal(t, entity.BlockKindBusy, blocks[0].Kind)
	assert.Equal(t, "overnight", blocks[1].Label)
}

func TestComputeFreeNoBusyIsWholeWindow(t *testing.T) {
	finder := NewFreeTimeFinder()

	free := finder.ComputeFree(nil, day, 8*60, 22*60)

	require.Len(t, free, 1)
	assert.Equal(t, at(8, 0), free[0].Start)
	assert.Equal(t, at(22, 0), free[0].End)
	assert.Equal(t, entity.BlockKindFree, free[0].Kind)
}

func TestComputeFreeComplementsBusyWithinWindow(t *testing.T) {
	finder := NewFreeTimeFinder()
	busy := finder.ExtractBusyBlocks([]entity.BusyEvent{
		busyEvent("meeting", 10, 0, 11, 0),
		busyEvent("lunch", 12, 30, 13, 30),
	}, day)

	wake, sleep := 9*60, 17*60
	free := finder.ComputeFree(busy, day, wake, sleep)

	require.Len(t, free, 3)
	assert.Equal(t, at(9, 0), free[0].Start)
	assert.Equal(t, at(10, 0), free[0].End)
	assert.Equal(t, at(11, 0), free[1].Start)
	assert.Equal(t, at(12, 30), free[1].End)
	assert.Equal(t, at(13, 30), free[2].Start)
	assert.Equal(t, at(17, 0), free[2].End)

	// Free and busy must partition the wake/sleep window exactly.
	var total time.Duration
	for _, b := range busy {
		total += b.Duration()
	}
	for _, f := range free {
		total += f.Duration()
	}
	assert.Equal(t, 8*time.Hour, total)

	for _, f := range free {
		for _, b := range busy {
			assert.False(t, f.Overlaps(b.TimeInterval), "free block %v overlaps busy %v", f, b)
		}
	}
}

func TestComputeFreeClipsBusySpillingPastWindow(t *testing.T) {
	finder := NewFreeTimeFinder()

	// Early-morning and late-night events reach outside the window; neither may
	// produce free time outside wake/sleep.
	busy := finder.ExtractBusyBlocks([]entity.BusyEvent{
		busyEvent("gym", 6, 0, 9, 30),
		busyEvent("party", 21, 0, 23, 59),
	}, day)

	free := finder.ComputeFree(busy, day, 9*60, 22*60)

	require.Len(t, free, 1)
	assert.Equal(t, at(9, 30), free[0].Start)
	assert.Equal(t, at(21, 0), free[0].End)
}

func TestComputeFreeOverlappingBusyBlocks(t *testing.T) {
	finder := NewFreeTimeFinder()

	busy := finder.ExtractBusyBlocks([]entity.BusyEvent{
		busyEvent("a", 10, 0, 12, 0),
		busyEvent("b", 11, 0, 13, 0),
		busyEvent("c", 11, 30, 11, 45),
	}, day)

	free := finder.ComputeFree(busy, day, 9*60, 17*60)

	require.Len(t, free, 2)
	assert.Equal(t, at(9, 0), free[0].Start)
	assert.Equal(t, at(10, 0), free[0].End)
	assert.Equal(t, at(13, 0), free[1].Start)
	assert.Equal(t, at(17, 0), free[1].End)
}

func TestFindMutualFreeWindowsTwoParties(t *testing.T) {
	finder := NewFreeTimeFinder()

	alice := participant(9*60, 17*60, busyEvent("meeting", 12, 0, 13, 0))
	bob := participant(10*60, 16*60, busyEvent("lunch", 12, 30, 13, 30))

	windows, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob}, day, day)

	require.Nil(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, at(10, 0), windows[0].Start)
	assert.Equal(t, at(12, 0), windows[0].End)
	assert.Equal(t, at(13, 30), windows[1].Start)
	assert.Equal(t, at(16, 0), windows[1].End)

	for _, w := range windows {
		assert.Equal(t, 2, w.ParticipantCount)
	}
}

func TestFindMutualFreeWindowsMinDuration(t *testing.T) {
	finder := NewFreeTimeFinder()
	finder.MinDurationMinutes = 45

	// The shared gap between the two busy blocks is only 30 minutes.
	alice := participant(9*60, 17*60, busyEvent("m1", 10, 0, 11, 0), busyEvent("m2", 11, 30, 16, 0))
	bob := participant(9*60, 17*60)

	windows, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob}, day, day)

	require.Nil(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, at(9, 0), windows[0].Start)
	assert.Equal(t, at(10, 0), windows[0].End)
	assert.Equal(t, at(16, 0), windows[1].Start)
	assert.Equal(t, at(17, 0), windows[1].End)
}

func TestFindMutualFreeWindowsMoreParticipantsNeverWiden(t *testing.T) {
	finder := NewFreeTimeFinder()

	alice := participant(9*60, 17*60, busyEvent("meeting", 12, 0, 13, 0))
	bob := participant(10*60, 16*60)
	carol := participant(11*60, 15*60, busyEvent("call", 13, 0, 14, 0))

	pair, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob}, day, day)
	require.Nil(t, err)
	trio, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob, carol}, day, day)
	require.Nil(t, err)

	// Every trio window must fit inside some pair window.
	for _, tw := range trio {
		contained := false
		for _, pw := range pair {
			if pw.Covers(tw.TimeInterval) {
				contained = true
				break
			}
		}
		assert.True(t, contained, "window %v not contained in any two-party window", tw)
	}
}

func TestFindMutualFreeWindowsDisjointSchedules(t *testing.T) {
	finder := NewFreeTimeFinder()

	early := participant(6*60, 10*60)
	late := participant(14*60, 22*60)

	windows, err := finder.FindMutualFreeWindows([]entity.Participant{early, late}, day, day)

	require.Nil(t, err)
	assert.Empty(t, windows)
}

func TestFindMutualFreeWindowsMultiDayAscending(t *testing.T) {
	finder := NewFreeTimeFinder()

	alice := participant(9*60, 12*60)
	bob := participant(10*60, 13*60)

	windows, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob}, day, day.AddDate(0, 0, 2))

	require.Nil(t, err)
	require.Len(t, windows, 3)
	for i := 1; i < len(windows); i++ {
		assert.True(t, windows[i-1].Start.Before(windows[i].Start))
	}
	assert.Equal(t, at(10, 0), windows[0].Start)
	assert.Equal(t, at(12, 0), windows[0].End)
	assert.Equal(t, at(10, 0).AddDate(0, 0, 2), windows[2].Start)
}

func TestFindMutualFreeWindowsInvalidParticipant(t *testing.T) {
	finder := NewFreeTimeFinder()

	unset := entity.Participant{ID: uuid.New()}

	_, err := finder.FindMutualFreeWindows([]entity.Participant{unset}, day, day)
	require.NotNil(t, err)
}

func TestGridScanStrategy(t *testing.T) {
	finder := NewFreeTimeFinder()
	finder.Strategy = StrategyGrid

	// Hour-aligned schedules so both strategies agree.
	alice := participant(9*60, 17*60, busyEvent("meeting", 12, 0, 13, 0))
	bob := participant(10*60, 16*60)

	windows, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob}, day, day)

	require.Nil(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, at(10, 0), windows[0].Start)
	assert.Equal(t, at(12, 0), windows[0].End)
	assert.Equal(t, at(13, 0), windows[1].Start)
	assert.Equal(t, at(16, 0), windows[1].End)
}

func TestGridScanDropsPartiallyCoveredSlots(t *testing.T) {
	finder := NewFreeTimeFinder()
	finder.Strategy = StrategyGrid

	// A 12:30 meeting end leaves the 12:00 slot only half free, so the grid
	// strategy cannot count it.
	alice := participant(9*60, 17*60, busyEvent("meeting", 12, 0, 12, 30))
	bob := participant(9*60, 17*60)

	windows, err := finder.FindMutualFreeWindows([]entity.Participant{alice, bob}, day, day)

	require.Nil(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, at(9, 0), windows[0].Start)
	assert.Equal(t, at(12, 0), windows[0].End)
	assert.Equal(t, at(13, 0), windows[1].Start)
	assert.Equal(t, at(17, 0), windows[1].End)
}
