package domain

import "time"

// AuditAction tags a security-relevant event.
type AuditAction string

const (
	AuditUserRegistered  AuditAction = "user.register"
	AuditUserLogin       AuditAction = "user.login"
	AuditUserLoginFailed AuditAction = "user.login_failed"
	AuditUserLogout      AuditAction = "user.logout"
	AuditUserUpdated     AuditAction = "user.updated"
)

// AuditEntry is an append-only record of a security-relevant action.
// UserID is nil for anonymous or failed attempts. Entries are write-only
// from the service's perspective.
type AuditEntry struct {
	ID         string
	UserID     *string
	Action     AuditAction
	EntityType string
	EntityID   string
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}
