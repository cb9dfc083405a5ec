package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/transaction"
)

// TransactionHandler maneja las atenciones de recepción (protegido).
type TransactionHandler struct {
	ledger *transaction.Ledger
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(ledger *transaction.Ledger) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Create godoc
// @Summary      Registrar atención
// @Description  startedAt solo lo respeta un admin; staff registra siempre con la hora actual.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "services[], guestName, startedAt, therapistName, roomName, notes"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	t, err := h.ledger.Create(c.UserContext(), actorOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"transaction": transaction.ToResponse(t)})
}

// List godoc
// @Summary      Consultar atenciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        scope  query  string  false  "active | today | history (default active)"
// @Param        from   query  string  false  "history: día inicial YYYY-MM-DD"
// @Param        to     query  string  false  "history: día final YYYY-MM-DD"
// @Success      200    {array}   dto.TransactionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var q dto.TransactionQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	list, err := h.ledger.Query(c.UserContext(), actorOf(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": transaction.ToResponses(list)})
}

// GetByID godoc
// @Summary      Obtener atención
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.ledger.Get(c.UserContext(), actorOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transaction": transaction.ToResponse(t)})
}

// Patch godoc
// @Summary      Actualizar atención
// @Description  Estados, medio de pago y textos. totalAmount solo admin. expectedRevision opcional.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la transacción"
// @Param        body  body  dto.PatchTransactionRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [patch]
func (h *TransactionHandler) Patch(c *fiber.Ctx) error {
	var in dto.PatchTransactionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	t, err := h.ledger.Patch(c.UserContext(), actorOf(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transaction": transaction.ToResponse(t)})
}
