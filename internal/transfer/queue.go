package transfer

import "sync"

// Queue hands each unit to exactly one caller. The emptiness check, the
// removal and the sequence bump happen under one lock.
type Queue struct {
	mu    sync.Mutex
	units []Unit
	seq   int
	total int
}

func NewQueue(units []Unit) *Queue {
	q := make([]Unit, len(units))
	copy(q, units)
	return &Queue{units: q, total: len(units)}
}

// TakeNext removes the head unit and returns it with its 1-based sequence
// number. ok is false once the queue is drained.
func (q *Queue) TakeNext() (unit Unit, seq int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.units) == 0 {
		return Unit{}, 0, false
	}

	unit = q.units[0]
	q.units[0] = Unit{}
	q.units = q.units[1:]
	q.seq++
	return unit, q.seq, true
}

func (q *Queue) Total() int {
	return q.total
}
