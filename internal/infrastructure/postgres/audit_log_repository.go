package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, user_id, kind, message, path, meta, created_at`

// Create persiste una entrada.
func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	query := `INSERT INTO audit_logs (` + auditColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		e.ID, nullable(e.UserID), string(e.Kind), e.Message, nullable(e.Path), e.Meta, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List entradas según filtro, la más reciente primero.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, error) {
	var w whereBuilder
	if f.UserID != "" {
		w.add("user_id::text = ?", f.UserID)
	}
	if f.Kind != "" {
		w.add("kind = ?", string(f.Kind))
	}
	query := `SELECT ` + auditColumns + ` FROM audit_logs` + w.sql() + ` ORDER BY created_at DESC, id DESC`
	query += w.limit(f.Limit)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := []*entity.AuditEntry{}
	for rows.Next() {
		var e entity.AuditEntry
		var userID, path *string
		var kind string
		if err := rows.Scan(&e.ID, &userID, &kind, &e.Message, &path, &e.Meta, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.UserID = deref(userID)
		e.Path = deref(path)
		e.Kind = entity.AuditKind(kind)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// savepointAuditRepo escribe cada entrada en un savepoint de la tx: si el INSERT falla
// solo se revierte el savepoint y la tx principal sigue utilizable.
type savepointAuditRepo struct {
	tx pgx.Tx
}

var _ repository.AuditLogRepository = (*savepointAuditRepo)(nil)

func (r *savepointAuditRepo) Create(ctx context.Context, e *entity.AuditEntry) error {
	sp, err := r.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint audit log: %w", err)
	}
	if err := NewAuditLogRepository(sp).Create(ctx, e); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

func (r *savepointAuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, error) {
	return NewAuditLogRepository(r.tx).List(ctx, f)
}
