package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/rs/zerolog"
)

// CatalogHandler categorías y plataformas de venta.
type CatalogHandler struct {
	uc  *usecase.CatalogUseCase
	log zerolog.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "name, sku"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreatePlatform godoc
// @Summary      Crear plataforma de venta
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePlatformRequest  true  "name"
// @Success      201   {object}  dto.PlatformResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/platforms [post]
func (h *CatalogHandler) CreatePlatform(c *fiber.Ctx) error {
	var in dto.CreatePlatformRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreatePlatform(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPlatforms godoc
// @Summary      Listar plataformas de venta
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PlatformResponse
// @Router       /api/v1/platforms [get]
func (h *CatalogHandler) ListPlatforms(c *fiber.Ctx) error {
	out, err := h.uc.ListPlatforms(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
