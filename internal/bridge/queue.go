package bridge

import "github.com/kb1gnc/cwkeyd/internal/domain"

// Queue is the FIFO of keyer-bound units awaiting transmission.
// It is unbounded; in practice it is limited by the client send rate,
// since the loop drains one unit per iteration.
type Queue struct {
	units []domain.Unit
}

// Push appends one unit.
func (q *Queue) Push(u domain.Unit) {
	q.units = append(q.units, u)
}

// Pop removes and returns the oldest unit. ok is false when the queue
// is empty.
func (q *Queue) Pop() (domain.Unit, bool) {
	if len(q.units) == 0 {
		return nil, false
	}
	u := q.units[0]
	q.units = q.units[1:]
	if len(q.units) == 0 {
		q.units = nil
	}
	return u, true
}

// Len returns the number of queued units.
func (q *Queue) Len() int {
	return len(q.units)
}

// Clear drops every queued unit. Used by the stop-keying command and at
// shutdown.
func (q *Queue) Clear() {
	q.units = nil
}
