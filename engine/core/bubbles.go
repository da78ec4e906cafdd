package core

// Bubbles tracks whether the input event being dispatched may still
// propagate. Handlers that consume input call Stop; Push/Pop scope a nested
// dispatch that must not leak its state to the outer one.
type Bubbles struct {
	stack []bool
}

func NewBubbles() *Bubbles { return &Bubbles{stack: []bool{true}} }

func (b *Bubbles) top() *bool {
	if len(b.stack) == 0 {
		b.stack = append(b.stack, true)
	}
	return &b.stack[len(b.stack)-1]
}

// Start re-arms propagation for a new dispatch.
func (b *Bubbles) Start()    { *b.top() = true }
func (b *Bubbles) Stop()     { *b.top() = false }
func (b *Bubbles) Get() bool { return *b.top() }

func (b *Bubbles) Push(v bool) { b.stack = append(b.stack, v) }

func (b *Bubbles) Pop() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}
