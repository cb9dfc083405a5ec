package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

var _ repository.InventoryAdjustmentRepository = (*InventoryAdjustmentRepo)(nil)

// InventoryAdjustmentRepo bitácora de ajustes sobre PostgreSQL. Solo INSERT y SELECT.
type InventoryAdjustmentRepo struct {
	q Querier
}

// NewInventoryAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAdjustmentRepository(q Querier) *InventoryAdjustmentRepo {
	return &InventoryAdjustmentRepo{q: q}
}

const adjustmentColumns = `id, item_id, business_date_key, kind, previous_qty, new_qty, difference,
	reason, actor_id, created_at`

// Create persiste un ajuste.
func (r *InventoryAdjustmentRepo) Create(ctx context.Context, adj *entity.InventoryAdjustment) error {
	query := `INSERT INTO inventory_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		adj.ID, adj.ItemID, adj.BusinessDateKey, string(adj.Kind), adj.PreviousQty, adj.NewQty,
		adj.Difference, adj.Reason, adj.ActorID, adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory adjustment: %w", err)
	}
	return nil
}

// List ajustes según filtro, el más reciente primero.
func (r *InventoryAdjustmentRepo) List(ctx context.Context, f repository.AdjustmentFilter) ([]*entity.InventoryAdjustment, error) {
	var w whereBuilder
	if f.ItemID != "" {
		w.add("item_id::text = ?", f.ItemID)
	}
	if f.Kind != "" {
		w.add("kind = ?", string(f.Kind))
	}
	if f.FromKey != "" {
		w.add("business_date_key >= ?", f.FromKey)
	}
	if f.ToKey != "" {
		w.add("business_date_key <= ?", f.ToKey)
	}
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments` + w.sql() +
		` ORDER BY created_at DESC, id DESC`
	query += w.limit(f.Limit)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory adjustments: %w", err)
	}
	defer rows.Close()
	list := []*entity.InventoryAdjustment{}
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAdjustment(row pgx.Row) (*entity.InventoryAdjustment, error) {
	var a entity.InventoryAdjustment
	var kind string
	err := row.Scan(&a.ID, &a.ItemID, &a.BusinessDateKey, &kind, &a.PreviousQty, &a.NewQty,
		&a.Difference, &a.Reason, &a.ActorID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Kind = entity.AdjustmentKind(kind)
	return &a, nil
}
