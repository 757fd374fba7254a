package engine

import (
	"sort"
	"time"
)

type deferred struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// DeferQueue holds one-shot callbacks keyed to real time, polled from the frame loop
// It is independent of any Timeline: pause, speed and rebuilds do not affect pending entries
type DeferQueue struct {
	clock   Clock
	pending []*deferred
	seq     uint64
}

// NewDeferQueue creates a queue reading time from clock
func NewDeferQueue(clock Clock) *DeferQueue {
	if clock == nil {
		clock = NewWallClock()
	}
	return &DeferQueue{clock: clock}
}

// After schedules fn to run on the first RunDue at or after now+d
func (q *DeferQueue) After(d time.Duration, fn func()) (cancel func()) {
	q.seq++
	entry := &deferred{
		due: q.clock.Now().Add(d),
		seq: q.seq,
		fn:  fn,
	}
	q.pending = append(q.pending, entry)
	return func() {
		entry.cancelled = true
	}
}

// RunDue fires every due callback in due order and returns how many ran
func (q *DeferQueue) RunDue() int {
	if len(q.pending) == 0 {
		return 0
	}
	now := q.clock.Now()

	var due []*deferred
	keep := q.pending[:0]
	for _, e := range q.pending {
		switch {
		case e.cancelled:
		case !e.due.After(now):
			due = append(due, e)
		default:
			keep = append(keep, e)
		}
	}
	for i := len(keep); i < len(q.pending); i++ {
		q.pending[i] = nil
	}
	q.pending = keep

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, e := range due {
		// Cancelled by an earlier callback in this batch
		if e.cancelled {
			continue
		}
		e.fn()
		ran++
	}
	return ran
}

// CancelAll drops every pending callback
func (q *DeferQueue) CancelAll() {
	for _, e := range q.pending {
		e.cancelled = true
	}
	q.pending = nil
}

// Len returns the number of pending callbacks, cancelled ones included until the next RunDue
func (q *DeferQueue) Len() int {
	return len(q.pending)
}
