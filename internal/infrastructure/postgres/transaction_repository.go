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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación sobre PostgreSQL. Las líneas de servicio van en JSONB.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, business_date_key, started_at, guest_name, services, total_amount,
	therapist_id, therapist_name, room_name, service_status, payment_status, payment_method, notes,
	created_by_user_id, revision, created_at, updated_at`

// Create persiste una transacción.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.BusinessDateKey, t.StartedAt, t.GuestName, t.Services, t.TotalAmount,
		nullable(t.TherapistID), t.TherapistName, t.RoomName, string(t.ServiceStatus), string(t.PaymentStatus),
		nullable(string(t.PaymentMethod)), t.Notes, t.CreatedByUserID, t.Revision, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
}

// GetForUpdate obtiene la transacción con bloqueo de fila.
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.findOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

// Update guarda los campos mutables e incrementa revision. business_date_key y services no cambian.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	query := `
		UPDATE transactions SET
			guest_name = $2, total_amount = $3, therapist_name = $4, room_name = $5,
			service_status = $6, payment_status = $7, payment_method = $8, notes = $9,
			updated_at = $10, revision = revision + 1
		WHERE id = $1
		RETURNING revision`
	err := r.q.QueryRow(ctx, query,
		t.ID, t.GuestName, t.TotalAmount, t.TherapistName, t.RoomName,
		string(t.ServiceStatus), string(t.PaymentStatus), nullable(string(t.PaymentMethod)), t.Notes,
		t.UpdatedAt,
	).Scan(&t.Revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Find transacciones según filtro, por started_at descendente.
func (r *TransactionRepo) Find(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var w whereBuilder
	if f.BusinessDateKey != "" {
		w.add("business_date_key = ?", f.BusinessDateKey)
	}
	if f.FromKey != "" {
		w.add("business_date_key >= ?", f.FromKey)
	}
	if f.ToKey != "" {
		w.add("business_date_key <= ?", f.ToKey)
	}
	if len(f.ServiceStatuses) > 0 {
		statuses := make([]string, 0, len(f.ServiceStatuses))
		for _, s := range f.ServiceStatuses {
			statuses = append(statuses, string(s))
		}
		w.add("service_status = ANY(?)", statuses)
	}
	if f.ExcludePaymentStatus != "" {
		w.add("payment_status <> ?", string(f.ExcludePaymentStatus))
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions` + w.sql() + ` ORDER BY started_at DESC, id DESC`
	query += w.limit(f.Limit)

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer rows.Close()
	list := []*entity.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *TransactionRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var therapistID, method *string
	var svc, pay string
	err := row.Scan(
		&t.ID, &t.BusinessDateKey, &t.StartedAt, &t.GuestName, &t.Services, &t.TotalAmount,
		&therapistID, &t.TherapistName, &t.RoomName, &svc, &pay, &method, &t.Notes,
		&t.CreatedByUserID, &t.Revision, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.TherapistID = deref(therapistID)
	t.ServiceStatus = entity.ServiceStatus(svc)
	t.PaymentStatus = entity.PaymentStatus(pay)
	t.PaymentMethod = entity.PaymentMethod(deref(method))
	return &t, nil
}
