package models

// Account event types published to the broker.
const (
	EventUserRegistered    = "user_registered"
	EventPasswordChanged   = "password_changed"
	EventUserDeactivated   = "user_deactivated"
)

// AccountEvent represents an account lifecycle event published to the broker.
type AccountEvent struct {
	EventID   string `json:"event_id"`  // EventID is a unique identifier for the event.
	Timestamp int64  `json:"timestamp"` // Timestamp is the Unix timestamp (in seconds) when the event occurred.
	Username  string `json:"username"`  // Username is the account the event refers to.
	Operation string `json:"operation"` // Operation is one of the Event* constants.
}
