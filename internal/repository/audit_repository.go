package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wildhaven/cms-auth/internal/domain"
)

// AuditRepository stores security audit entries. Append-only; nothing in
// the service reads entries back.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository builds repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, entry *domain.AuditEntry) error {
	const query = `
        INSERT INTO audit_log (user_id, action, entity_type, entity_id, ip_address, user_agent)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.IPAddress,
		entry.UserAgent,
	).Scan(&entry.ID, &entry.CreatedAt)
}
