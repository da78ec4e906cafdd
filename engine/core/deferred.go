package core

// Deferred is a FIFO of callbacks drained at a single point per tick, after
// the synchronous phase that queued them.
type Deferred struct {
	queue []func()
}

func NewDeferred() *Deferred { return &Deferred{} }

func (d *Deferred) Push(fn func()) {
	if fn != nil {
		d.queue = append(d.queue, fn)
	}
}

func (d *Deferred) Len() int { return len(d.queue) }

// Flush runs queued callbacks in order. Callbacks queued while flushing run
// in the same flush. A callback may flush again; it drains what was queued
// after the current batch.
func (d *Deferred) Flush() {
	for len(d.queue) > 0 {
		q := d.queue
		d.queue = nil
		for _, fn := range q {
			fn()
		}
	}
}
