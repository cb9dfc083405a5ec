package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, name, sku, category, quantity_on_hand, reorder_level, unit_cost, unit_price,
	is_active, last_updated_by, revision, created_at, updated_at`

// Create persiste un insumo. SKU repetido = ErrDuplicate.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.SKU, string(item.Category), item.QuantityOnHand, item.ReorderLevel,
		item.UnitCost, item.UnitPrice, item.IsActive, nullable(item.LastUpdatedBy), item.Revision,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
}

// GetForUpdate obtiene el insumo con bloqueo de fila. Solo tiene sentido dentro de una tx.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
}

// GetBySKU obtiene un insumo por SKU.
func (r *InventoryItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error) {
	return r.findOne(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku)
}

// Update guarda el insumo e incrementa revision (también en item).
func (r *InventoryItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $2, category = $3, quantity_on_hand = $4, reorder_level = $5,
			unit_cost = $6, unit_price = $7, is_active = $8, last_updated_by = $9,
			updated_at = $10, revision = revision + 1
		WHERE id = $1
		RETURNING revision`
	err := r.q.QueryRow(ctx, query,
		item.ID, item.Name, string(item.Category), item.QuantityOnHand, item.ReorderLevel,
		item.UnitCost, item.UnitPrice, item.IsActive, nullable(item.LastUpdatedBy), item.UpdatedAt,
	).Scan(&item.Revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update inventory item: %w", err)
	}
	return nil
}

// List insumos ordenados por nombre.
func (r *InventoryItemRepo) List(ctx context.Context, includeInactive bool) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	return r.findMany(ctx, query+` ORDER BY name, id`)
}

// ListBelowReorderLevel insumos activos con existencia en o bajo el nivel de reorden.
func (r *InventoryItemRepo) ListBelowReorderLevel(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.findMany(ctx, `SELECT `+itemColumns+` FROM inventory_items
		WHERE is_active AND quantity_on_hand <= reorder_level
		ORDER BY name, id`)
}

func (r *InventoryItemRepo) findOne(ctx context.Context, query string, args ...any) (*entity.InventoryItem, error) {
	item, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return item, nil
}

func (r *InventoryItemRepo) findMany(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	list := []*entity.InventoryItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	var category string
	var lastUpdatedBy *string
	err := row.Scan(
		&i.ID, &i.Name, &i.SKU, &category, &i.QuantityOnHand, &i.ReorderLevel, &i.UnitCost, &i.UnitPrice,
		&i.IsActive, &lastUpdatedBy, &i.Revision, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	i.Category = entity.ItemCategory(category)
	i.LastUpdatedBy = deref(lastUpdatedBy)
	return &i, nil
}
