package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

func TestStore_RunDescartaCambiosSiFalla(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "i1", SKU: "OIL-1", Name: "Oil", QuantityOnHand: 5, IsActive: true}))

	boom := errors.New("boom")
	err := s.Run(ctx, func(items repository.InventoryItemRepository, adjustments repository.InventoryAdjustmentRepository, _ repository.AuditLogRepository) error {
		item, err := items.GetForUpdate(ctx, "i1")
		require.NoError(t, err)
		item.QuantityOnHand = 9
		require.NoError(t, items.Update(ctx, item))
		require.NoError(t, adjustments.Create(ctx, &entity.InventoryAdjustment{ID: "a1", ItemID: "i1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	item, err := s.Items().GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 5, item.QuantityOnHand)
	assert.Equal(t, int64(0), item.Revision)
	adjs, err := s.Adjustments().List(ctx, repository.AdjustmentFilter{ItemID: "i1"})
	require.NoError(t, err)
	assert.Empty(t, adjs)
}

func TestStore_RunPublicaAlConfirmar(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "i1", SKU: "OIL-1", Name: "Oil", IsActive: true}))

	err := s.Run(ctx, func(items repository.InventoryItemRepository, _ repository.InventoryAdjustmentRepository, _ repository.AuditLogRepository) error {
		item, _ := items.GetForUpdate(ctx, "i1")
		item.QuantityOnHand = 3
		return items.Update(ctx, item)
	})
	require.NoError(t, err)

	item, _ := s.Items().GetByID(ctx, "i1")
	assert.Equal(t, 3, item.QuantityOnHand)
	assert.Equal(t, int64(1), item.Revision)
}

func TestItemRepo_SKUDuplicado(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "i1", SKU: "X"}))
	assert.ErrorIs(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "i2", SKU: "X"}), domain.ErrDuplicate)
}

func TestItemRepo_ListBelowReorderLevel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "a", SKU: "A", Name: "Towel", QuantityOnHand: 2, ReorderLevel: 5, IsActive: true}))
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "b", SKU: "B", Name: "Oil", QuantityOnHand: 5, ReorderLevel: 5, IsActive: true}))
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "c", SKU: "C", Name: "Cup", QuantityOnHand: 9, ReorderLevel: 5, IsActive: true}))
	require.NoError(t, s.Items().Create(ctx, &entity.InventoryItem{ID: "d", SKU: "D", Name: "Old", QuantityOnHand: 0, ReorderLevel: 5, IsActive: false}))

	list, err := s.Items().ListBelowReorderLevel(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Oil", list[0].Name)
	assert.Equal(t, "Towel", list[1].Name)
}

func TestTransactionRepo_FindFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mk := func(id, key string, offset time.Duration, svc entity.ServiceStatus, pay entity.PaymentStatus) {
		require.NoError(t, s.Transactions().Create(ctx, &entity.Transaction{
			ID: id, BusinessDateKey: key, StartedAt: base.Add(offset),
			Services:      []entity.ServiceLine{{ServiceName: "Swedish"}},
			ServiceStatus: svc, PaymentStatus: pay,
		}))
	}
	mk("t1", "2024-05-01", 0, entity.ServiceOngoing, entity.PaymentUnpaid)
	mk("t2", "2024-05-01", time.Hour, entity.ServiceDone, entity.PaymentPaid)
	mk("t3", "2024-05-01", 2*time.Hour, entity.ServiceDone, entity.PaymentUnpaid)
	mk("t4", "2024-04-30", 0, entity.ServiceOngoing, entity.PaymentUnpaid)

	active, err := s.Transactions().Find(ctx, repository.TransactionFilter{
		BusinessDateKey:      "2024-05-01",
		ServiceStatuses:      []entity.ServiceStatus{entity.ServiceOngoing, entity.ServiceDone},
		ExcludePaymentStatus: entity.PaymentPaid,
	})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "t3", active[0].ID)
	assert.Equal(t, "t1", active[1].ID)

	history, err := s.Transactions().Find(ctx, repository.TransactionFilter{FromKey: "2024-04-30", ToKey: "2024-04-30"})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "t4", history[0].ID)
}

func TestLocker_ClaveTomada(t *testing.T) {
	ctx := context.Background()
	l := NewLocker()
	lock, err := l.Obtain(ctx, "k", time.Minute)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, lock.Release(ctx))
	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.NoError(t, err)
}

func TestDenylist_Vencimiento(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := NewDenylist()
	d.now = func() time.Time { return now }

	require.NoError(t, d.Revoke(ctx, "jti", now.Add(time.Minute)))
	revoked, err := d.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, _ = d.IsRevoked(ctx, "jti")
	assert.False(t, revoked)
}
