package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/rs/zerolog"
)

// HeaderIdempotencyKey header opcional para deduplicar pedidos.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderHandler creación y consulta de pedidos (protegido).
type OrderHandler struct {
	uc  *order.PlaceOrderUseCase
	log zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *order.PlaceOrderUseCase, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// Place godoc
// @Summary      Crear pedido
// @Description  Valida todas las líneas contra el stock actual y confirma todo o nada. Con Idempotency-Key repetida devuelve el pedido original.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                 false  "Clave de deduplicación"
// @Param        body             body      dto.PlaceOrderRequest  true   "platform_id, items, sale_date"
// @Success      201              {object}  dto.OrderResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      404              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
	out, err := h.uc.PlaceOrder(c.Context(), in, key)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
