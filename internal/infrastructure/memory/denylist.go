package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/spa-pos-api/internal/application/identity"
)

// Denylist tokens revocados en proceso. Se usa cuando no hay Redis configurado.
type Denylist struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

var _ identity.RevocationStore = (*Denylist)(nil)

// NewDenylist crea la lista vacía.
func NewDenylist() *Denylist {
	return &Denylist{until: map[string]time.Time{}, now: time.Now}
}

// Revoke marca tokenID como revocado hasta until.
func (d *Denylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gc()
	d.until[tokenID] = until
	return nil
}

// IsRevoked true si tokenID fue revocado y su revocación sigue vigente.
func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.until[tokenID]
	return ok && d.now().Before(until), nil
}

func (d *Denylist) gc() {
	now := d.now()
	for id, until := range d.until {
		if !now.Before(until) {
			delete(d.until, id)
		}
	}
}
