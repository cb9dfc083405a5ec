package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
)

// InventoryHandler maneja insumos, recepciones, conteos y ajustes (protegido).
type InventoryHandler struct {
	ledger   *inventory.Ledger
	catalog  *inventory.CatalogUseCase
	lowStock *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, catalog *inventory.CatalogUseCase, lowStock *inventory.LowStockUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, catalog: catalog, lowStock: lowStock}
}

// ListItems godoc
// @Summary      Listar insumos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        includeInactive  query  bool  false  "Incluir insumos inactivos"
// @Success      200  {array}   dto.ItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.catalog.ListItems(c.UserContext(), actorOf(c), c.QueryBool("includeInactive", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": inventory.ToItemResponses(items)})
}

// GetItem godoc
// @Summary      Obtener insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.catalog.GetItem(c.UserContext(), actorOf(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item": inventory.ToItemResponse(item)})
}

// CreateItem godoc
// @Summary      Crear insumo
// @Description  La existencia inicial distinta de cero queda como recepción "Initial stock".
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, sku, category, quantityOnHand, reorderLevel, unitCost, unitPrice"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	item, err := h.catalog.CreateItem(c.UserContext(), actorOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": inventory.ToItemResponse(item)})
}

// UpdateItem godoc
// @Summary      Actualizar insumo
// @Description  No modifica la existencia; para eso están recepción, conteo y ajuste.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del insumo"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [patch]
func (h *InventoryHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	item, err := h.catalog.UpdateItem(c.UserContext(), actorOf(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item": inventory.ToItemResponse(item)})
}

// ItemHistory godoc
// @Summary      Bitácora de un insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del insumo"
// @Param        from  query  string  false  "Día de negocio inicial (YYYY-MM-DD)"
// @Param        to    query  string  false  "Día de negocio final (YYYY-MM-DD)"
// @Success      200   {array}   dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/adjustments [get]
func (h *InventoryHandler) ItemHistory(c *fiber.Ctx) error {
	var q dto.ItemHistoryQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	list, err := h.catalog.ItemHistory(c.UserContext(), actorOf(c), c.Params("id"), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"adjustments": inventory.ToAdjustmentResponses(list)})
}

// Receive godoc
// @Summary      Registrar recepción de insumo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "itemId, quantity (>0), reason"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	item, err := h.ledger.Receive(c.UserContext(), actorOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item": inventory.ToItemResponse(item)})
}

// DailyCount godoc
// @Summary      Registrar conteo físico diario
// @Description  Las líneas inválidas o de insumos inexistentes se devuelven en skipped.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DailyCountRequest  true  "dateKey opcional, counts[{itemId, actualQty}]"
// @Success      200   {object}  dto.DailyCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/daily [post]
func (h *InventoryHandler) DailyCount(c *fiber.Ctx) error {
	var in dto.DailyCountRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.ledger.RecordDailyCount(c.UserContext(), actorOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de existencia (admin)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "itemId, newQty (>=0), reason"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	item, err := h.ledger.Adjust(c.UserContext(), actorOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item": inventory.ToItemResponse(item)})
}

// LowStock godoc
// @Summary      Lista de reposición
// @Description  Insumos activos en o bajo su nivel de reorden con la cantidad sugerida de pedido.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.lowStock.GenerateList(c.UserContext(), actorOf(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": list})
}
