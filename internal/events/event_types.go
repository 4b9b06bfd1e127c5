package events

import (
	"time"

	"github.com/wildhaven/cms-auth/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserLoggedIn    EventType = "user_logged_in"
	EventUserLoginFailed EventType = "user_login_failed"
	EventUserLoggedOut   EventType = "user_logged_out"
	EventUserUpdated     EventType = "user_updated"
)

// Request carries the request metadata that audit entries record.
type Request struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}

// Event represents a security event emitted by handlers. UserID is nil
// for anonymous or failed attempts.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    *string   `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Request   Request   `json:"request"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditAction maps the event type to its audit action tag.
func (e Event) AuditAction() domain.AuditAction {
	switch e.Type {
	case EventUserRegistered:
		return domain.AuditUserRegistered
	case EventUserLoggedIn:
		return domain.AuditUserLogin
	case EventUserLoginFailed:
		return domain.AuditUserLoginFailed
	case EventUserLoggedOut:
		return domain.AuditUserLogout
	default:
		return domain.AuditUserUpdated
	}
}
