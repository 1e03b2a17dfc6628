package core

// Action is a semantic game input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionPrimary        // Space - start / restart
	ActionUp             // Up arrow - upward velocity override
	ActionDown           // Down arrow - downward velocity override
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrimary:
		return "Primary"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for _, a := range []Action{ActionPrimary, ActionUp, ActionDown} {
		if a.String() == s {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame holds the actions delivered to a single simulation tick,
// in the order they arrived.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	return InputFrame{Actions: actions}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action arrived this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	if f.Actions == nil {
		return InputFrame{}
	}
	clone := make([]Action, len(f.Actions))
	copy(clone, f.Actions)
	return InputFrame{Actions: clone}
}

// DefaultQueueSize is used when a queue is created with a non-positive capacity.
const DefaultQueueSize = 8

// InputQueue is a bounded FIFO of actions waiting for the next tick.
// Key events are pushed as they arrive and drained once per frame, so
// every input applies at a well-defined tick. When full, the oldest
// action is dropped.
type InputQueue struct {
	buf     []Action
	head    int
	size    int
	dropped int
}

// NewInputQueue creates a queue holding at most capacity actions.
func NewInputQueue(capacity int) *InputQueue {
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}
	return &InputQueue{buf: make([]Action, capacity)}
}

// Push enqueues an action. ActionNone is ignored.
func (q *InputQueue) Push(a Action) {
	if a == ActionNone {
		return
	}
	if q.size == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
	}
	q.buf[(q.head+q.size)%len(q.buf)] = a
	q.size++
}

// Len returns the number of queued actions.
func (q *InputQueue) Len() int {
	return q.size
}

// Cap returns the queue capacity.
func (q *InputQueue) Cap() int {
	return len(q.buf)
}

// Dropped returns how many actions were discarded because the queue was full.
func (q *InputQueue) Dropped() int {
	return q.dropped
}

// Drain removes every queued action and returns them as one frame, oldest first.
func (q *InputQueue) Drain() InputFrame {
	if q.size == 0 {
		return InputFrame{}
	}
	out := make([]Action, q.size)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head = 0
	q.size = 0
	return InputFrame{Actions: out}
}
