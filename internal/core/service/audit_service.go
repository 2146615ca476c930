package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/user-management-api/internal/core/domain"
	"github.com/sirpyerre/user-management-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting entries to repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit entry. Entries arrive via the dispatcher
// workers, so failures here are reported to the worker, not to the original
// request.
func (s *auditService) Record(ctx context.Context, in ports.AuditEntryInput) error {
	entry := &domain.AuditEntry{
		UserID:    in.UserID,
		Email:     in.Email,
		Actor:     in.Actor,
		Action:    in.Action,
		Timestamp: in.Timestamp,
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	s.log.Debug().
		Str("user_id", in.UserID).
		Str("action", string(in.Action)).
		Msg("audit entry recorded")
	return nil
}
