package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/infrastructure/memory"
)

func TestRecordClientLog_Defaults(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rec := audit.NewRecorder(store.AuditLog(), nil, nil).WithClock(func() time.Time { return now })
	uc := audit.NewLogUseCase(rec, store.AuditLog())
	ctx := context.Background()

	require.NoError(t, uc.RecordClientLog(ctx, nil, dto.ClientLogRequest{Path: "/login"}))
	assert.ErrorIs(t, uc.RecordClientLog(ctx, nil, dto.ClientLogRequest{Type: "debug"}), domain.ErrInvalidValue)

	admin := entity.Actor{ID: "a", Role: entity.RoleAdmin}
	list, err := uc.List(ctx, admin, dto.LogQuery{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "action", list[0].Type)
	assert.Equal(t, "client log", list[0].Message)
	assert.Equal(t, "", list[0].UserID)
	assert.Equal(t, now, list[0].CreatedAt)
}

func TestList_SoloAdminYLimite(t *testing.T) {
	store := memory.NewStore()
	uc := audit.NewLogUseCase(audit.NewRecorder(store.AuditLog(), nil, nil), store.AuditLog())
	ctx := context.Background()
	staff := entity.Actor{ID: "s", Role: entity.RoleStaff}

	for i := 0; i < 3; i++ {
		require.NoError(t, uc.RecordClientLog(ctx, &staff, dto.ClientLogRequest{Type: "navigation", Message: "page"}))
	}
	_, err := uc.List(ctx, staff, dto.LogQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(ctx, entity.Actor{ID: "a", Role: entity.RoleAdmin}, dto.LogQuery{Type: "navigation", UserID: "s", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
