package event

import "time"

type Type string

const (
	TypeUserRegistered Type = "user.registered"
	TypeProfileUpdated Type = "user.profile_updated"
	TypeAccountDeleted Type = "user.deleted"
	TypeLoginSucceeded Type = "auth.login"
	TypeLoginFailed    Type = "auth.login_failed"
	TypeTokenRefreshed Type = "auth.refresh"
	TypeLogout         Type = "auth.logout"
	TypeTokenRejected  Type = "auth.token_rejected"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	ActorID   string    `json:"actor_id,omitempty"` // Who triggered the event
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
