package store

// Status tracks the lifecycle of an asynchronous operation. It is re-entrant:
// a new call moves a fulfilled or rejected operation back to pending.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusFulfilled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	default:
		return "idle"
	}
}
