package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"

	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/domain"
)

// Locker locks distribuidos con redislock. Reintenta unas veces antes de rendirse.
type Locker struct {
	client *redislock.Client
	retry  redislock.RetryStrategy
}

var _ inventory.Locker = (*Locker)(nil)

// NewLocker construye el locker sobre el cliente.
func NewLocker(c *Client) *Locker {
	return &Locker{
		client: redislock.New(c.raw),
		retry:  redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 5),
	}
}

// Obtain toma key por ttl. Clave tomada tras los reintentos = domain.ErrConflict.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (inventory.Lock, error) {
	lock, err := l.client.Obtain(ctx, keyNamespace+":lock:"+key, ttl, &redislock.Options{RetryStrategy: l.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return &redisLock{lock: lock}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release libera el lock. Un lock ya vencido no es error.
func (k *redisLock) Release(ctx context.Context) error {
	err := k.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}
