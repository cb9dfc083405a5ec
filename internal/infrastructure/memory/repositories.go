package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ v view }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(s *state) error {
		for _, existing := range s.users {
			if strings.EqualFold(existing.Username, u.Username) {
				return domain.ErrUsernameTaken
			}
		}
		s.users[u.ID] = copyUser(u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (out *entity.User, err error) {
	r.v.read(func(s *state) {
		if u, ok := s.users[id]; ok {
			out = copyUser(u)
		}
	})
	return out, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (out *entity.User, err error) {
	r.v.read(func(s *state) {
		for _, u := range s.users {
			if strings.EqualFold(u.Username, username) {
				out = copyUser(u)
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Count(_ context.Context) (n int, err error) {
	r.v.read(func(s *state) { n = len(s.users) })
	return n, nil
}

// ── Insumos ───────────────────────────────────────────────────────────────────

// ItemRepo implementa repository.InventoryItemRepository.
type ItemRepo struct{ v view }

var _ repository.InventoryItemRepository = (*ItemRepo)(nil)

func (r *ItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.v.write(func(s *state) error {
		for _, existing := range s.items {
			if existing.SKU == item.SKU {
				return domain.ErrDuplicate
			}
		}
		s.items[item.ID] = copyItem(item)
		return nil
	})
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (out *entity.InventoryItem, err error) {
	r.v.read(func(s *state) {
		if i, ok := s.items[id]; ok {
			out = copyItem(i)
		}
	})
	return out, nil
}

// GetForUpdate dentro de Run la transacción ya es exclusiva.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) GetBySKU(_ context.Context, sku string) (out *entity.InventoryItem, err error) {
	r.v.read(func(s *state) {
		for _, i := range s.items {
			if i.SKU == sku {
				out = copyItem(i)
				return
			}
		}
	})
	return out, nil
}

func (r *ItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.items[item.ID]; !ok {
			return domain.ErrNotFound
		}
		item.Revision++
		s.items[item.ID] = copyItem(item)
		return nil
	})
}

func (r *ItemRepo) List(_ context.Context, includeInactive bool) ([]*entity.InventoryItem, error) {
	return r.collect(func(i *entity.InventoryItem) bool { return includeInactive || i.IsActive }), nil
}

func (r *ItemRepo) ListBelowReorderLevel(_ context.Context) ([]*entity.InventoryItem, error) {
	return r.collect(func(i *entity.InventoryItem) bool {
		return i.IsActive && i.QuantityOnHand <= i.ReorderLevel
	}), nil
}

func (r *ItemRepo) collect(keep func(*entity.InventoryItem) bool) []*entity.InventoryItem {
	out := []*entity.InventoryItem{}
	r.v.read(func(s *state) {
		for _, i := range s.items {
			if keep(i) {
				out = append(out, copyItem(i))
			}
		}
	})
	sort.Slice(out, func(a, b int) bool {
		if out[a].Name != out[b].Name {
			return out[a].Name < out[b].Name
		}
		return out[a].ID < out[b].ID
	})
	return out
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

// AdjustmentRepo implementa repository.InventoryAdjustmentRepository.
type AdjustmentRepo struct{ v view }

var _ repository.InventoryAdjustmentRepository = (*AdjustmentRepo)(nil)

func (r *AdjustmentRepo) Create(_ context.Context, adj *entity.InventoryAdjustment) error {
	return r.v.write(func(s *state) error {
		s.adjustments = append(s.adjustments, copyAdjustment(adj))
		return nil
	})
}

// List recorre de atrás hacia adelante: el orden de inserción desempata CreatedAt.
func (r *AdjustmentRepo) List(_ context.Context, f repository.AdjustmentFilter) ([]*entity.InventoryAdjustment, error) {
	out := []*entity.InventoryAdjustment{}
	r.v.read(func(s *state) {
		for i := len(s.adjustments) - 1; i >= 0; i-- {
			a := s.adjustments[i]
			if f.ItemID != "" && a.ItemID != f.ItemID {
				continue
			}
			if f.Kind != "" && a.Kind != f.Kind {
				continue
			}
			if !inKeyRange(a.BusinessDateKey, f.FromKey, f.ToKey) {
				continue
			}
			out = append(out, copyAdjustment(a))
		}
	})
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return limit(out, f.Limit), nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TransactionRepo implementa repository.TransactionRepository.
type TransactionRepo struct{ v view }

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

func (r *TransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.txs[t.ID]; ok {
			return domain.ErrDuplicate
		}
		s.txs[t.ID] = copyTransaction(t)
		return nil
	})
}

func (r *TransactionRepo) GetByID(_ context.Context, id string) (out *entity.Transaction, err error) {
	r.v.read(func(s *state) {
		if t, ok := s.txs[id]; ok {
			out = copyTransaction(t)
		}
	})
	return out, nil
}

func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *TransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	return r.v.write(func(s *state) error {
		if _, ok := s.txs[t.ID]; !ok {
			return domain.ErrNotFound
		}
		t.Revision++
		s.txs[t.ID] = copyTransaction(t)
		return nil
	})
}

func (r *TransactionRepo) Find(_ context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	out := []*entity.Transaction{}
	r.v.read(func(s *state) {
		for _, t := range s.txs {
			if f.BusinessDateKey != "" && t.BusinessDateKey != f.BusinessDateKey {
				continue
			}
			if !inKeyRange(t.BusinessDateKey, f.FromKey, f.ToKey) {
				continue
			}
			if len(f.ServiceStatuses) > 0 && !containsStatus(f.ServiceStatuses, t.ServiceStatus) {
				continue
			}
			if f.ExcludePaymentStatus != "" && t.PaymentStatus == f.ExcludePaymentStatus {
				continue
			}
			out = append(out, copyTransaction(t))
		}
	})
	sort.Slice(out, func(a, b int) bool {
		if !out[a].StartedAt.Equal(out[b].StartedAt) {
			return out[a].StartedAt.After(out[b].StartedAt)
		}
		return out[a].ID > out[b].ID
	})
	return limit(out, f.Limit), nil
}

// ── Bitácora ──────────────────────────────────────────────────────────────────

// AuditLogRepo implementa repository.AuditLogRepository.
type AuditLogRepo struct{ v view }

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

func (r *AuditLogRepo) Create(_ context.Context, e *entity.AuditEntry) error {
	return r.v.write(func(s *state) error {
		s.audit = append(s.audit, copyAuditEntry(e))
		return nil
	})
}

func (r *AuditLogRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, error) {
	out := []*entity.AuditEntry{}
	r.v.read(func(s *state) {
		for i := len(s.audit) - 1; i >= 0; i-- {
			e := s.audit[i]
			if f.UserID != "" && e.UserID != f.UserID {
				continue
			}
			if f.Kind != "" && e.Kind != f.Kind {
				continue
			}
			out = append(out, copyAuditEntry(e))
		}
	})
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return limit(out, f.Limit), nil
}

// ── utilidades ────────────────────────────────────────────────────────────────

// inKeyRange las llaves YYYY-MM-DD se comparan como texto.
func inKeyRange(key, from, to string) bool {
	if from != "" && key < from {
		return false
	}
	if to != "" && key > to {
		return false
	}
	return true
}

func containsStatus(list []entity.ServiceStatus, s entity.ServiceStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func limit[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
