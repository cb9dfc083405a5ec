package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/transaction"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/businessdate"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
	"github.com/jhoicas/spa-pos-api/internal/infrastructure/memory"
)

var (
	admin = entity.Actor{ID: "u-admin", Username: "boss", Role: entity.RoleAdmin}
	staff = entity.Actor{ID: "u-staff", Username: "desk", Role: entity.RoleStaff}
)

type fixture struct {
	store  *memory.Store
	ledger *transaction.Ledger
	now    time.Time
	loc    *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	f := &fixture{store: memory.NewStore(), loc: loc}
	f.now = time.Date(2024, 5, 1, 14, 0, 0, 0, loc)
	cal, err := businessdate.NewCalendar(loc, businessdate.DefaultCutoffHour, func() time.Time { return f.now })
	require.NoError(t, err)
	rec := audit.NewRecorder(f.store.AuditLog(), nil, nil)
	f.ledger = transaction.NewLedger(f.store, f.store.Transactions(), cal, rec, nil)
	return f
}

func str(s string) *string { return &s }

func oneService(amount dto.LooseNumber) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		GuestName: "Ana",
		Services:  []dto.ServiceLineRequest{{ServiceName: "Swedish", DurationMinutes: dto.Int(60), Amount: amount}},
	}
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_TotalEsSumaDeLineas(t *testing.T) {
	f := newFixture(t)
	tx, err := f.ledger.Create(context.Background(), staff, dto.CreateTransactionRequest{
		Services: []dto.ServiceLineRequest{
			{ServiceName: "Swedish", Amount: dto.Int(800)},
			{ServiceName: "Foot spa", Amount: dto.Number(decimal.RequireFromString("350.50"))},
			{ServiceName: "Add-on", Amount: dto.LooseNumber{Present: true}},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1150.50").Equal(tx.TotalAmount))
	assert.Equal(t, "2024-05-01", tx.BusinessDateKey)
	assert.Equal(t, entity.ServiceOngoing, tx.ServiceStatus)
	assert.Equal(t, entity.PaymentUnpaid, tx.PaymentStatus)
	assert.Equal(t, staff.ID, tx.CreatedByUserID)
	assert.True(t, tx.Services[2].Amount.IsZero())

	logs, err := f.store.AuditLog().List(context.Background(), repository.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Created transaction "+tx.ID+" (₱1150.50)", logs[0].Message)
	assert.Equal(t, tx.ID, logs[0].Meta["transactionId"])
}

func TestCreate_SinServicios(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Create(context.Background(), staff, dto.CreateTransactionRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	_, err = f.ledger.Create(context.Background(), staff, dto.CreateTransactionRequest{
		Services: []dto.ServiceLineRequest{{ServiceName: "  ", Amount: dto.Int(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestCreate_StartedAtSoloAdmin(t *testing.T) {
	f := newFixture(t)
	req := oneService(dto.Int(500))
	req.StartedAt = "2024-04-28T15:00"

	tx, err := f.ledger.Create(context.Background(), staff, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", tx.BusinessDateKey)
	assert.True(t, f.now.Equal(tx.StartedAt))

	tx, err = f.ledger.Create(context.Background(), admin, req)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-28", tx.BusinessDateKey)
}

func TestCreate_AntesDelCortePerteneceAlDiaAnterior(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2024, 5, 2, 2, 30, 0, 0, f.loc)
	tx, err := f.ledger.Create(context.Background(), staff, oneService(dto.Int(500)))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", tx.BusinessDateKey)
}

// ── Patch ─────────────────────────────────────────────────────────────────────

func TestPatch_StaffCobraYNoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx, err := f.ledger.Create(ctx, staff, oneService(dto.Int(500)))
	require.NoError(t, err)

	got, err := f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{
		ServiceStatus: str("done"), PaymentStatus: str("paid"), PaymentMethod: str("gcash"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceDone, got.ServiceStatus)
	assert.Equal(t, entity.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, entity.MethodGCash, got.PaymentMethod)
	assert.Equal(t, int64(1), got.Revision)

	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{PaymentStatus: str("unpaid")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err = f.ledger.Patch(ctx, admin, tx.ID, dto.PatchTransactionRequest{PaymentStatus: str("unpaid")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentUnpaid, got.PaymentStatus)
}

func TestPatch_TotalSoloAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx, err := f.ledger.Create(ctx, staff, oneService(dto.Int(500)))
	require.NoError(t, err)

	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{TotalAmount: dto.Int(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// total no numérico se ignora: sin otros campos es NoOp
	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{TotalAmount: dto.LooseNumber{Present: true}})
	assert.ErrorIs(t, err, domain.ErrNoOp)

	got, err := f.ledger.Patch(ctx, admin, tx.ID, dto.PatchTransactionRequest{TotalAmount: dto.Int(450)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(450).Equal(got.TotalAmount))
}

func TestPatch_TotalFueraDeNumeric(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx, err := f.ledger.Create(ctx, staff, oneService(dto.Int(500)))
	require.NoError(t, err)

	for _, raw := range []string{"450.125", "10000000000", "-10000000000"} {
		_, err = f.ledger.Patch(ctx, admin, tx.ID, dto.PatchTransactionRequest{TotalAmount: dto.Number(decimal.RequireFromString(raw))})
		assert.ErrorIs(t, err, domain.ErrInvalidValue, raw)
	}

	got, err := f.ledger.Get(ctx, admin, tx.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(got.TotalAmount))
	assert.Equal(t, int64(0), got.Revision)

	got, err = f.ledger.Patch(ctx, admin, tx.ID, dto.PatchTransactionRequest{TotalAmount: dto.Number(decimal.RequireFromString("9999999999.99"))})
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", got.TotalAmount.StringFixed(2))
}

func TestCreate_MontosAlCentavoYTotalAcotado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.ledger.Create(ctx, staff, oneService(dto.Number(decimal.RequireFromString("600.555"))))
	require.NoError(t, err)
	assert.Equal(t, "600.56", tx.TotalAmount.StringFixed(2))
	assert.Equal(t, "600.56", tx.Services[0].Amount.StringFixed(2))

	_, err = f.ledger.Create(ctx, staff, dto.CreateTransactionRequest{
		Services: []dto.ServiceLineRequest{
			{ServiceName: "Suite", Amount: dto.Number(decimal.RequireFromString("6000000000"))},
			{ServiceName: "Suite", Amount: dto.Number(decimal.RequireFromString("6000000000"))},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestPatch_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx, err := f.ledger.Create(ctx, staff, oneService(dto.Int(500)))
	require.NoError(t, err)

	_, err = f.ledger.Patch(ctx, staff, "ghost", dto.PatchTransactionRequest{Notes: str("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{ServiceStatus: str("paused")})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{ServiceStatus: str("")})
	assert.ErrorIs(t, err, domain.ErrNoOp)

	// textos vacíos sí se aplican
	got, err := f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{GuestName: str("")})
	require.NoError(t, err)
	assert.Equal(t, "", got.GuestName)

	stale := int64(0)
	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{Notes: str("late"), ExpectedRevision: &stale})
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, err := f.ledger.Get(ctx, staff, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Notes)
}

func TestPatch_StaffNoEditaDiasAnteriores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tx, err := f.ledger.Create(ctx, staff, oneService(dto.Int(500)))
	require.NoError(t, err)

	f.now = f.now.Add(24 * time.Hour)
	_, err = f.ledger.Patch(ctx, staff, tx.ID, dto.PatchTransactionRequest{ServiceStatus: str("done")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.ledger.Patch(ctx, admin, tx.ID, dto.PatchTransactionRequest{ServiceStatus: str("done")})
	assert.NoError(t, err)
}

// ── Query ─────────────────────────────────────────────────────────────────────

func TestQuery_Alcances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := oneService(dto.Int(100))
	old.StartedAt = "2024-04-20T12:00:00+08:00"
	_, err := f.ledger.Create(ctx, admin, old)
	require.NoError(t, err)

	open, err := f.ledger.Create(ctx, staff, oneService(dto.Int(200)))
	require.NoError(t, err)
	f.now = f.now.Add(time.Minute)
	paid, err := f.ledger.Create(ctx, staff, oneService(dto.Int(300)))
	require.NoError(t, err)
	_, err = f.ledger.Patch(ctx, staff, paid.ID, dto.PatchTransactionRequest{PaymentStatus: str("paid")})
	require.NoError(t, err)

	active, err := f.ledger.Query(ctx, staff, dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	today, err := f.ledger.Query(ctx, staff, dto.TransactionQuery{Scope: "today"})
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, paid.ID, today[0].ID)

	_, err = f.ledger.Query(ctx, staff, dto.TransactionQuery{Scope: "history"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	history, err := f.ledger.Query(ctx, admin, dto.TransactionQuery{Scope: "history", From: "2024-04-01", To: "2024-04-30"})
	require.NoError(t, err)
	require.Len(t, history, 1)

	_, err = f.ledger.Query(ctx, admin, dto.TransactionQuery{Scope: "history", From: "yesterday"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.ledger.Query(ctx, admin, dto.TransactionQuery{Scope: "week"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}
