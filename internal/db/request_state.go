package db

// RequestState is the lifecycle state of a rental request (persisted as a
// string).
type RequestState string

const (
	StatePending  RequestState = "pending"
	StateApproved RequestState = "approved"
	StateDeclined RequestState = "declined"
)

// allowTransition is the transition graph of the request workflow. Approved
// and declined are terminal: once answered, a request never changes again.
var allowTransition = map[RequestState][]RequestState{
	StatePending:  {StateApproved, StateDeclined},
	StateApproved: {},
	StateDeclined: {},
}

// CanTransition reports whether from -> to is an allowed state change.
func CanTransition(from, to RequestState) bool {
	allowed, ok := allowTransition[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state has no outgoing transitions.
func (s RequestState) Terminal() bool {
	return len(allowTransition[s]) == 0
}

// Valid reports whether the state is one the workflow knows about.
func (s RequestState) Valid() bool {
	_, ok := allowTransition[s]
	return ok
}
