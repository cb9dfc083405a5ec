package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Todos son recuperables por el llamador; cualquier otro error es interno.
var (
	ErrUnauthenticated = errors.New("identidad no válida o ausente")
	ErrForbidden       = errors.New("acceso denegado")
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidValue    = errors.New("valor inválido")
	ErrInvalidQuantity = errors.New("cantidad inválida")
	ErrMissingInput    = errors.New("faltan datos requeridos")
	ErrNoOp            = errors.New("no hay campos válidos para actualizar")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrUsernameTaken   = errors.New("el usuario ya existe")
)
