package anim

// Handle identifies a scheduled frame callback. The zero Handle never refers
// to a scheduled frame.
type Handle uint64

// FrameRequester is the host's per-frame callback facility.
type FrameRequester interface {
	// RequestFrame schedules fn for the next frame and returns a nonzero handle.
	RequestFrame(fn func()) Handle
	// CancelFrame prevents the callback behind h from firing. Unknown or
	// already fired handles are ignored.
	CancelFrame(h Handle)
}

type frameEntry struct {
	handle Handle
	fn     func()
}

// FrameQueue is a FrameRequester whose frames fire when the host calls
// Advance. It is not safe for concurrent use; hosts drive it from a single
// goroutine.
type FrameQueue struct {
	last    Handle
	pending []frameEntry
	firing  []frameEntry
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue { return &FrameQueue{} }

// RequestFrame implements FrameRequester.
func (q *FrameQueue) RequestFrame(fn func()) Handle {
	q.last++
	q.pending = append(q.pending, frameEntry{handle: q.last, fn: fn})
	return q.last
}

// CancelFrame implements FrameRequester. A callback cancelled while a batch is
// firing is skipped even if it belongs to that batch.
func (q *FrameQueue) CancelFrame(h Handle) {
	for i := range q.pending {
		if q.pending[i].handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.firing {
		if q.firing[i].handle == h {
			q.firing[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Advance fires the callbacks that were pending when it was called and
// returns how many ran. Callbacks requested during Advance wait for the next
// call.
func (q *FrameQueue) Advance() int {
	q.firing, q.pending = q.pending, nil
	ran := 0
	for i := range q.firing {
		fn := q.firing[i].fn
		if fn == nil {
			continue
		}
		q.firing[i].fn = nil
		fn()
		ran++
	}
	q.firing = q.firing[:0]
	return ran
}
