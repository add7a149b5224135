// Package optimistic is the one place that encodes "apply the change now,
// reconcile with the server later": the flag flips immediately, the server's
// answer wins when it is unambiguous, and a failed request reverts to the
// prior value. Every screen that toggles a favorite goes through it.
package optimistic

// Toggle tracks one optimistic boolean flip.
type Toggle struct {
	prev    bool
	current bool
}

// Begin flips the value immediately and remembers what to revert to.
func Begin(value bool) *Toggle {
	return &Toggle{prev: value, current: !value}
}

// Value is the optimistic state to render while the request is in flight.
func (t *Toggle) Value() bool {
	return t.current
}

// Reconcile folds in the server's answer. ok is false when the response shape
// carried no recognizable boolean, in which case the optimistic value stands.
func (t *Toggle) Reconcile(server bool, ok bool) bool {
	if ok {
		t.current = server
	}
	return t.current
}

// Revert restores the pre-toggle value after a failed request.
func (t *Toggle) Revert() bool {
	t.current = t.prev
	return t.current
}
