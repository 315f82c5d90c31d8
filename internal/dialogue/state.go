package dialogue

// State is the lifecycle state of the controller's exchange slot
type State int

const (
	// StateIdle accepts a new message
	StateIdle State = iota
	// StateAwaitingReply has a request in flight; sends are rejected
	StateAwaitingReply
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingReply:
		return "awaiting_reply"
	default:
		return "unknown"
	}
}
