package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/application/revenue"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/rs/zerolog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CatalogUC   *usecase.CatalogUseCase
	InventoryUC *inventory.AdjustmentUseCase
	OrderUC     *order.PlaceOrderUseCase
	RevenueUC   *revenue.UseCase
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1", AuthMiddleware(deps.JWTSecret))

	// Escrituras: admin u operator. Reportes: admin o analyst.
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleOperator)
	readers := RequireRole(jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleAnalyst)
	analysts := RequireRole(jwt.RoleAdmin, jwt.RoleAnalyst)

	catalogHandler := NewCatalogHandler(deps.CatalogUC, deps.Log)
	api.Post("/categories", writers, catalogHandler.CreateCategory)
	api.Get("/categories", readers, catalogHandler.ListCategories)
	api.Post("/platforms", writers, catalogHandler.CreatePlatform)
	api.Get("/platforms", readers, catalogHandler.ListPlatforms)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", readers, productHandler.List)
	products.Get("/:id", readers, productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	invGroup.Post("/", writers, inventoryHandler.Adjust)
	invGroup.Get("/low-stock", readers, inventoryHandler.ListLowStock)
	invGroup.Get("/product/:product_id", readers, inventoryHandler.GetCurrent)
	invGroup.Put("/product/:product_id", writers, inventoryHandler.AdjustProduct)
	invGroup.Get("/product/:product_id/history", readers, inventoryHandler.GetHistory)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Log)
	orders.Post("/", writers, orderHandler.Place)
	orders.Get("/:id", readers, orderHandler.GetByID)

	rev := api.Group("/revenue", analysts)
	revenueHandler := NewRevenueHandler(deps.RevenueUC, deps.Log)
	rev.Get("/custom", revenueHandler.GetCustom)
	rev.Post("/compare", revenueHandler.Compare)
	rev.Post("/compare-by-category", revenueHandler.CompareByCategory)
	rev.Get("/:period", revenueHandler.GetPeriod)
}
