package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
)

// LogHandler bitácora: eventos del cliente y consulta (admin).
type LogHandler struct {
	uc *audit.LogUseCase
}

// NewLogHandler construye el handler.
func NewLogHandler(uc *audit.LogUseCase) *LogHandler {
	return &LogHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar evento del cliente
// @Description  Sesión opcional. type vacío = action.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientLogRequest  true  "type, message, path, meta"
// @Success      201   {object}  map[string]bool
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/log [post]
func (h *LogHandler) Record(c *fiber.Ctx) error {
	var in dto.ClientLogRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if err := h.uc.RecordClientLog(c.UserContext(), GetActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// List godoc
// @Summary      Consultar bitácora (admin)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "auth | navigation | action | system"
// @Param        userId  query  string  false  "Filtrar por usuario"
// @Param        limit   query  int     false  "Máximo de registros (default 100, máx. 500)"
// @Success      200     {array}   dto.AuditEntryResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *LogHandler) List(c *fiber.Ctx) error {
	var q dto.LogQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.List(c.UserContext(), actorOf(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"logs": list})
}
