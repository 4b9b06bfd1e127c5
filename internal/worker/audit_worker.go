package worker

import (
	"github.com/wildhaven/cms-auth/internal/service"
)

// StartAuditWorker registers audit sink handlers.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
