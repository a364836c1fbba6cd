package entity

import (
	"time"

	"hangout-api/core/errors"
)

// BlockKind classifies a time block.
type BlockKind string

const (
	BlockKindBusy    BlockKind = "busy"
	BlockKindFree    BlockKind = "free"
	BlockKindOverlap BlockKind = "overlap"
)

// TimeInterval is a half-open time span [Start, End). Immutable once constructed.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeInterval validates start < end. Invalid bounds are never silently swapped.
func NewTimeInterval(start, end time.Time) (TimeInterval, *errors.AppError) {
	if !start.Before(end) {
		return TimeInterval{}, errors.NewAppError(errors.ErrInvalidInput, "interval start must be before end", nil)
	}
	return TimeInterval{Start: start, End: end}, nil
}

func (t TimeInterval) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Overlaps reports whether the two intervals share any time.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	return t.Start.Before(other.End) && t.End.After(other.Start)
}

// Overlap returns the intersection of two intervals. ok is false when they are disjoint.
func (t TimeInterval) Overlap(other TimeInterval) (TimeInterval, bool) {
	start := t.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := t.End
	if other.End.Before(end) {
		end = other.End
	}
	if !start.Before(end) {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: start, End: end}, true
}

// Covers reports whether t fully contains other.
func (t TimeInterval) Covers(other TimeInterval) bool {
	return !t.Start.After(other.Start) && !t.End.Before(other.End)
}

// Contains reports whether the instant falls inside the interval.
func (t TimeInterval) Contains(at time.Time) bool {
	return !at.Before(t.Start) && at.Before(t.End)
}

// Clip bounds t to the given window. ok is false when nothing remains.
func (t TimeInterval) Clip(window TimeInterval) (TimeInterval, bool) {
	return t.Overlap(window)
}

// ClassifiedBlock is a time interval with a busy/free classification and an
// optional label carrying the source event title.
type ClassifiedBlock struct {
	TimeInterval
	Kind  BlockKind `json:"kind"`
	Label string    `json:"label,omitempty"`
}

// FreeWindow is a maximal interval during which ParticipantCount participants
// are simultaneously free, meeting the minimum-duration threshold.
type FreeWindow struct {
	TimeInterval
	ParticipantCount int `json:"participant_count"`
}
