package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/domain"
)

// Locker locks por clave en proceso, con vencimiento. No reintenta: clave tomada = ErrConflict.
type Locker struct {
	mu   sync.Mutex
	held map[string]heldLock
	now  func() time.Time
}

type heldLock struct {
	token   string
	expires time.Time
}

var _ inventory.Locker = (*Locker)(nil)

// NewLocker crea el locker.
func NewLocker() *Locker {
	return &Locker{held: map[string]heldLock{}, now: time.Now}
}

// Obtain toma key por ttl.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (inventory.Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return nil, domain.ErrConflict
	}
	token := uuid.NewString()
	l.held[key] = heldLock{token: token, expires: now.Add(ttl)}
	return &localLock{locker: l, key: key, token: token}, nil
}

type localLock struct {
	locker *Locker
	key    string
	token  string
}

// Release libera el lock solo si sigue siendo nuestro.
func (k *localLock) Release(_ context.Context) error {
	k.locker.mu.Lock()
	defer k.locker.mu.Unlock()
	if h, ok := k.locker.held[k.key]; ok && h.token == k.token {
		delete(k.locker.held, k.key)
	}
	return nil
}
