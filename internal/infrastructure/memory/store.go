// Package memory implementa los repositorios y los TxRunner en memoria (DB_DRIVER=memory).
// Una transacción trabaja sobre una copia del estado y la publica al confirmar; las
// transacciones se serializan entre sí.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/application/transaction"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

type state struct {
	users       map[string]*entity.User
	items       map[string]*entity.InventoryItem
	adjustments []*entity.InventoryAdjustment
	txs         map[string]*entity.Transaction
	audit       []*entity.AuditEntry
}

func newState() *state {
	return &state{
		users: map[string]*entity.User{},
		items: map[string]*entity.InventoryItem{},
		txs:   map[string]*entity.Transaction{},
	}
}

func (s *state) clone() *state {
	cp := newState()
	for k, v := range s.users {
		cp.users[k] = copyUser(v)
	}
	for k, v := range s.items {
		cp.items[k] = copyItem(v)
	}
	for k, v := range s.txs {
		cp.txs[k] = copyTransaction(v)
	}
	// append-only: los registros ya publicados no cambian
	cp.adjustments = append([]*entity.InventoryAdjustment(nil), s.adjustments...)
	cp.audit = append([]*entity.AuditEntry(nil), s.audit...)
	return cp
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

var (
	_ inventory.TxRunner   = (*Store)(nil)
	_ transaction.TxRunner = (*Store)(nil)
)

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// view acceso a un estado: el publicado (con lock) o la copia privada de una transacción.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(s *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	fn(v.store.data)
}

func (v view) write(fn func(s *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	// una escritura suelta espera a las transacciones en curso
	v.store.txMu.Lock()
	defer v.store.txMu.Unlock()
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func (s *Store) root() view { return view{store: s} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() repository.UserRepository { return &UserRepo{v: s.root()} }

// Items repositorio de insumos fuera de transacción.
func (s *Store) Items() repository.InventoryItemRepository { return &ItemRepo{v: s.root()} }

// Adjustments repositorio de ajustes fuera de transacción.
func (s *Store) Adjustments() repository.InventoryAdjustmentRepository {
	return &AdjustmentRepo{v: s.root()}
}

// Transactions repositorio de transacciones fuera de transacción.
func (s *Store) Transactions() repository.TransactionRepository { return &TransactionRepo{v: s.root()} }

// AuditLog repositorio de bitácora fuera de transacción.
func (s *Store) AuditLog() repository.AuditLogRepository { return &AuditLogRepo{v: s.root()} }

// atomically ejecuta fn sobre una copia del estado y la publica si fn no falla.
func (s *Store) atomically(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.data.clone()
	s.mu.RUnlock()

	if err := fn(view{store: s, tx: work}); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	adjustments repository.InventoryAdjustmentRepository,
	auditLog repository.AuditLogRepository,
) error) error {
	return s.atomically(ctx, func(v view) error {
		return fn(&ItemRepo{v: v}, &AdjustmentRepo{v: v}, &AuditLogRepo{v: v})
	})
}

// RunTransactions implementa transaction.TxRunner.
func (s *Store) RunTransactions(ctx context.Context, fn func(
	txs repository.TransactionRepository,
	auditLog repository.AuditLogRepository,
) error) error {
	return s.atomically(ctx, func(v view) error {
		return fn(&TransactionRepo{v: v}, &AuditLogRepo{v: v})
	})
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func copyItem(i *entity.InventoryItem) *entity.InventoryItem {
	cp := *i
	return &cp
}

func copyAdjustment(a *entity.InventoryAdjustment) *entity.InventoryAdjustment {
	cp := *a
	return &cp
}

func copyTransaction(t *entity.Transaction) *entity.Transaction {
	cp := *t
	cp.Services = make([]entity.ServiceLine, len(t.Services))
	for i, l := range t.Services {
		cp.Services[i] = l
		if l.DurationMinutes != nil {
			d := *l.DurationMinutes
			cp.Services[i].DurationMinutes = &d
		}
	}
	return &cp
}

func copyAuditEntry(e *entity.AuditEntry) *entity.AuditEntry {
	cp := *e
	if e.Meta != nil {
		cp.Meta = make(map[string]any, len(e.Meta))
		for k, v := range e.Meta {
			cp.Meta[k] = v
		}
	}
	return &cp
}
