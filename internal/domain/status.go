package domain

// Status is the lifecycle state of an order.
//
// The happy path is pending → confirmed → cooking → ready → delivered.
// Forward moves may skip intermediate states (an admin can mark a pending
// order delivered directly) but never go backward; cancelled is reachable
// from any non-terminal state. delivered and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCooking   Status = "cooking"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// statusRank orders the happy-path states for the monotonicity check.
// cancelled has no rank; it is handled separately.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusCooking:   2,
	StatusReady:     3,
	StatusDelivered: 4,
}

// Statuses lists every valid order status.
func Statuses() []Status {
	return []Status{
		StatusPending, StatusConfirmed, StatusCooking,
		StatusReady, StatusDelivered, StatusCancelled,
	}
}

// ParseStatus converts a raw string into a Status, reporting whether the
// value names a known state.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

// Valid reports whether s names a known order status.
func (s Status) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether s admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition under the explicit policy documented on Status.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.Valid() || !next.Valid() || s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}
