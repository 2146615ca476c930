package ports

import (
	"context"
	"time"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
)

// AuditEntryInput is the transport-agnostic form of an audit record as it
// travels through the dispatcher queue.
type AuditEntryInput struct {
	UserID    string
	Email     string
	Actor     string
	Action    domain.AuditAction
	Timestamp time.Time
}

// AuditService persists user-lifecycle audit entries.
type AuditService interface {
	Record(ctx context.Context, input AuditEntryInput) error
}

// AuditRepository stores audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditRecorder is the enqueue-side interface services use; entries are
// written asynchronously and failures never reach the caller.
type AuditRecorder interface {
	Enqueue(entry AuditEntryInput)
}
