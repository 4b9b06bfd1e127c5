package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/wildhaven/cms-auth/internal/domain"
	"github.com/wildhaven/cms-auth/internal/events"
	"github.com/wildhaven/cms-auth/internal/repository"
)

// AuditService consumes security events and appends audit log entries.
// Writes are best-effort: a failed insert is logged and swallowed so the
// originating request never fails on audit.
type AuditService struct {
	dispatcher events.Dispatcher
	audits     repository.AuditRepository
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, audits repository.AuditRepository, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		audits:     audits,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.record)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.record)
	a.dispatcher.Subscribe(events.EventUserLoginFailed, a.record)
	a.dispatcher.Subscribe(events.EventUserLoggedOut, a.record)
	a.dispatcher.Subscribe(events.EventUserUpdated, a.record)
}

func (a *AuditService) record(ctx context.Context, event events.Event) error {
	entry := &domain.AuditEntry{
		UserID:     event.UserID,
		Action:     event.AuditAction(),
		EntityType: "user",
		IPAddress:  event.Request.IPAddress,
		UserAgent:  event.Request.UserAgent,
	}
	if event.UserID != nil {
		entry.EntityID = *event.UserID
	}

	if err := a.audits.Create(ctx, entry); err != nil {
		a.logger.Error("audit write failed",
			zap.String("action", string(entry.Action)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
