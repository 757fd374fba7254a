package engine

import (
	"sort"
	"time"
)

// Scheduled is a read-only view of a timeline entry
type Scheduled struct {
	Offset time.Duration
	Span   time.Duration
	Name   string
}

type timelineEntry struct {
	offset time.Duration
	effect Effect
}

// Timeline is a Scheduler driven by elapsed time passed to Advance
// Due entries fire in offset order, insertion order on ties. With repeat enabled the cycle
// is the latest entry end plus the repeat delay; the playhead wraps and the cycle replays
type Timeline struct {
	entries []timelineEntry
	next    int // Index of the next entry to fire in the current cycle

	playhead time.Duration
	end      time.Duration // Latest offset+span
	delay    time.Duration
	repeat   bool
	cycles   int

	paused bool
	killed bool
}

// NewTimeline creates an empty, playing timeline
func NewTimeline() *Timeline {
	return &Timeline{}
}

// ScheduleAt inserts an effect at offset within the cycle
func (t *Timeline) ScheduleAt(offset time.Duration, effect Effect) {
	if t.killed {
		return
	}
	if offset < 0 {
		offset = 0
	}

	// Stable insertion after all entries with offset <= new offset
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].offset > offset
	})
	t.entries = append(t.entries, timelineEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = timelineEntry{offset: offset, effect: effect}

	if i < t.next {
		t.next++
	}
	if end := offset + effect.Span; end > t.end {
		t.end = end
	}
}

// ScheduleRepeating loops the timeline indefinitely, pausing delay after the last entry ends
func (t *Timeline) ScheduleRepeating(delay time.Duration) {
	t.repeat = true
	t.delay = max(delay, 0)
}

// Period is the length of one cycle including the repeat delay
func (t *Timeline) Period() time.Duration {
	if !t.repeat {
		return t.end
	}
	return t.end + t.delay
}

// Advance moves the playhead by dt and fires every entry crossed, wrapping across cycles
func (t *Timeline) Advance(dt time.Duration) {
	if t.killed || t.paused || dt < 0 {
		return
	}

	target := t.playhead + dt
	period := t.Period()

	for {
		for t.next < len(t.entries) && t.entries[t.next].offset <= target {
			e := t.entries[t.next]
			t.next++
			t.playhead = e.offset
			if e.effect.Fire != nil {
				e.effect.Fire()
			}
			// An effect may tear down its own timeline
			if t.killed || t.paused {
				return
			}
		}

		if !t.repeat || period <= 0 || target < period {
			if !t.repeat && target > t.end {
				target = t.end
			}
			t.playhead = target
			return
		}

		target -= period
		t.playhead = 0
		t.next = 0
		t.cycles++
	}
}

// Play resumes advancement
func (t *Timeline) Play() {
	t.paused = false
}

// Pause freezes the playhead, Advance becomes a no-op
func (t *Timeline) Pause() {
	t.paused = true
}

// Kill stops the timeline permanently and drops its entries
func (t *Timeline) Kill() {
	t.killed = true
	t.entries = nil
	t.next = 0
}

// Paused reports the pause state
func (t *Timeline) Paused() bool {
	return t.paused
}

// Killed reports whether Kill was called
func (t *Timeline) Killed() bool {
	return t.killed
}

// Playhead is the position within the current cycle
func (t *Timeline) Playhead() time.Duration {
	return t.playhead
}

// Cycles is the number of completed wraps
func (t *Timeline) Cycles() int {
	return t.cycles
}

// Entries lists scheduled entries in firing order
func (t *Timeline) Entries() []Scheduled {
	out := make([]Scheduled, len(t.entries))
	for i, e := range t.entries {
		out[i] = Scheduled{Offset: e.offset, Span: e.effect.Span, Name: e.effect.Name}
	}
	return out
}
