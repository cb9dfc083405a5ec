package redis

import (
	"context"
	"time"

	"github.com/jhoicas/spa-pos-api/internal/application/identity"
)

// Denylist tokens revocados en Redis: una clave por jti con TTL hasta el vencimiento del token.
type Denylist struct {
	store cmdable
	now   func() time.Time
}

var _ identity.RevocationStore = (*Denylist)(nil)

// NewDenylist construye la lista sobre el cliente.
func NewDenylist(c *Client) *Denylist {
	return &Denylist{store: c.store, now: time.Now}
}

// Revoke guarda tokenID hasta until. Un token ya vencido no necesita entrada.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.store.Set(ctx, key("revoked", tokenID), "1", ttl).Err()
}

// IsRevoked true si existe la clave del token.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.store.Exists(ctx, key("revoked", tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
