// Package identity resuelve la credencial opaca de una petición en un actor con rol validado.
// El resto de la aplicación solo ve entity.Actor, nunca los claims crudos del token.
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/pkg/jwt"
)

// RevocationStore lista de tokens revocados (logout) indexada por jti.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session identidad resuelta más los datos del token necesarios para revocarlo.
type Session struct {
	Actor     entity.Actor
	TokenID   string
	ExpiresAt time.Time
}

// Resolver valida tokens firmados con el secreto de la aplicación.
type Resolver struct {
	secret  string
	revoked RevocationStore
}

// NewResolver construye el resolver. revoked puede ser nil (sin logout server-side).
func NewResolver(secret string, revoked RevocationStore) *Resolver {
	return &Resolver{secret: secret, revoked: revoked}
}

// Resolve devuelve la sesión del token o ErrUnauthenticated si no es válido, está revocado,
// o trae un rol desconocido. Un fallo del RevocationStore se propaga como error interno.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := jwt.Parse(r.secret, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	role, ok := entity.ParseRole(claims.Role)
	if !ok || claims.UserID() == "" {
		return nil, domain.ErrUnauthenticated
	}
	if r.revoked != nil && claims.ID != "" {
		revoked, err := r.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar revocación: %w", err)
		}
		if revoked {
			return nil, domain.ErrUnauthenticated
		}
	}
	return &Session{
		Actor: entity.Actor{
			ID:       claims.UserID(),
			Username: claims.Username,
			Role:     role,
		},
		TokenID:   claims.ID,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// Revoke invalida la sesión hasta su vencimiento.
func (r *Resolver) Revoke(ctx context.Context, s *Session) error {
	if r.revoked == nil || s == nil || s.TokenID == "" {
		return nil
	}
	return r.revoked.Revoke(ctx, s.TokenID, s.ExpiresAt)
}
