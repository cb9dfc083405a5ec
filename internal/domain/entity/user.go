package entity

import "time"

// Role rol cerrado del personal. Se valida una sola vez en la frontera de autenticación.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole convierte el texto del token o de la petición en un Role válido.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleStaff:
		return Role(s), true
	}
	return "", false
}

// User representa un usuario del POS (recepción o administración).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Role         Role
	CreatedAt    time.Time
}

// Actor identidad ya verificada que ejecuta una operación del ledger.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

// Valid indica si el actor tiene id y un rol conocido.
func (a Actor) Valid() bool {
	_, ok := ParseRole(string(a.Role))
	return a.ID != "" && ok
}

// IsAdmin true si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
