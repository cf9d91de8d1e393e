package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/rs/zerolog"
)

// InventoryHandler ajustes y consultas del ledger de inventario (protegido).
type InventoryHandler struct {
	uc  *inventory.AdjustmentUseCase
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.AdjustmentUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// Adjust godoc
// @Summary      Ajustar inventario
// @Description  Agrega una entrada al ledger. quantity_changed negativo descuenta; threshold omitido hereda el anterior.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AdjustInventoryRequest  true  "product_id, quantity_changed, threshold, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.adjust(c, in)
}

// AdjustProduct godoc
// @Summary      Ajustar inventario de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id  path      string                      true  "ID del producto"
// @Param        body        body      dto.AdjustInventoryRequest  true  "quantity_changed, threshold, reason"
// @Success      201         {object}  dto.AdjustmentResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/product/{product_id} [put]
func (h *InventoryHandler) AdjustProduct(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	in.ProductID = c.Params("product_id")
	return h.adjust(c, in)
}

func (h *InventoryHandler) adjust(c *fiber.Ctx, in dto.AdjustInventoryRequest) error {
	out, err := h.uc.AdjustInventory(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCurrent godoc
// @Summary      Inventario actual de un producto
// @Description  Última entrada del ledger con la alerta de stock bajo. 404 si el producto no tiene historial.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path      string  true  "ID del producto"
// @Success      200         {object}  dto.AdjustmentResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/product/{product_id} [get]
func (h *InventoryHandler) GetCurrent(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrentInventory(c.Context(), c.Params("product_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetHistory godoc
// @Summary      Historial de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  path      string  true   "ID del producto"
// @Param        page        query     int     false  "Página (>= 1)"
// @Param        limit       query     int     false  "Tamaño de página (1..1000, por defecto 100)"
// @Success      200         {object}  dto.InventoryHistoryResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/product/{product_id}/history [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	out, err := h.uc.GetHistory(c.Context(), c.Params("product_id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Productos con stock bajo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page   query     int  false  "Página"
// @Param        limit  query     int  false  "Tamaño de página"
// @Success      200    {object}  dto.InventoryHistoryResponse
// @Router       /api/v1/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context(), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", dto.DefaultLimit),
	}
}
