package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
)

// LocalError guarda el error interno para que el logger de peticiones lo incluya.
const LocalError = "request_error"

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Orden importa: ErrUserNotFound antes que ErrNotFound (mensajes distintos).
var errorMappings = []errorMapping{
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autenticado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrInvalidValue, fiber.StatusBadRequest, "INVALID_VALUE", "valor inválido"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY", "cantidad inválida"},
	{domain.ErrMissingInput, fiber.StatusBadRequest, "MISSING_INPUT", "faltan datos requeridos"},
	{domain.ErrNoOp, fiber.StatusBadRequest, "NO_OP", "no hay campos válidos para actualizar"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrUsernameTaken, fiber.StatusConflict, "USERNAME_TAKEN", "el usuario ya existe"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el registro cambió; recargar e intentar de nuevo"},
}

// respondError traduce un error de caso de uso a la respuesta HTTP.
// Errores fuera del dominio = 500 INTERNAL reintentable; el detalle solo va al log.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	c.Locals(LocalError, err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:      "INTERNAL",
		Message:   "error interno, intente de nuevo",
		Retryable: true,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler handler de errores de Fiber: rutas inexistentes, panics recuperados y errores sin mapear.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			c.Locals(LocalError, fe.Message)
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
