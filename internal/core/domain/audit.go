package domain

import "time"

// AuditAction identifies a user-lifecycle change recorded in the audit trail.
type AuditAction string

const (
	AuditUserCreated AuditAction = "user_created"
	AuditUserUpdated AuditAction = "user_updated"
	AuditUserDeleted AuditAction = "user_deleted"
)

// AuditEntry records who changed which user, and how.
type AuditEntry struct {
	UserID    string
	Email     string
	Actor     string // email of the authenticated caller, empty for system actions
	Action    AuditAction
	Timestamp time.Time
}
