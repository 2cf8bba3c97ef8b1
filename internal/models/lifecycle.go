package models

// Lifecycle is the state of the single outbound request.
type Lifecycle int

const (
	Idle Lifecycle = iota
	InFlight
	Settled
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// RequestSnapshot is an immutable copy of the request state handed to the UI.
type RequestSnapshot struct {
	RequestID   string
	Instruction string
	Lifecycle   Lifecycle
	Response    *RecommendationResponse
}

// Busy reports whether a request is in flight.
func (s RequestSnapshot) Busy() bool {
	return s.Lifecycle == InFlight
}
