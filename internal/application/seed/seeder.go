package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// SalesCount pedidos aleatorios generados en el último año.
const SalesCount = 50

type productSeed struct {
	category  string
	name      string
	sku       string
	price     string
	stock     int64 // 0: sin entrada inicial
	threshold int64
}

var productSeeds = []productSeed{
	{category: "Audio", name: "Premium Headphones", sku: "PH-100", price: "199.99", stock: 100, threshold: 10},
	{category: "Peripherals", name: "Wireless Mouse", sku: "WM-200", price: "29.99", stock: 200, threshold: 20},
	{category: "Peripherals", name: "Mechanical Keyboard", sku: "MK-300", price: "129.99"},
}

var platformSeeds = []string{"Web Store", "Marketplace"}

// Seeder carga datos de ejemplo usando los mismos casos de uso que la API,
// así las ventas sembradas pasan por el ledger igual que las reales.
type Seeder struct {
	catalog   *usecase.CatalogUseCase
	products  *usecase.ProductUseCase
	inventory *inventory.AdjustmentUseCase
	orders    *order.PlaceOrderUseCase
	log       zerolog.Logger
	rng       *rand.Rand
	now       func() time.Time
}

// NewSeeder construye el seeder. seed fija la secuencia aleatoria.
func NewSeeder(
	catalog *usecase.CatalogUseCase,
	products *usecase.ProductUseCase,
	inv *inventory.AdjustmentUseCase,
	orders *order.PlaceOrderUseCase,
	log zerolog.Logger,
	seed uint64,
) *Seeder {
	return &Seeder{
		catalog:   catalog,
		products:  products,
		inventory: inv,
		orders:    orders,
		log:       log,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run siembra catálogo, stock inicial y ventas. Devuelve false si ya había productos.
func (s *Seeder) Run(ctx context.Context) (bool, error) {
	existing, err := s.products.List(ctx, dto.PageRequest{Page: 1, Limit: 1})
	if err != nil {
		return false, fmt.Errorf("seed: contar productos: %w", err)
	}
	if existing.Pagination.TotalItems > 0 {
		s.log.Info().Msg("datos ya sembrados, se omite")
		return false, nil
	}
	s.log.Info().Msg("sembrando datos iniciales")

	categories := map[string]string{}
	for _, ps := range productSeeds {
		if _, ok := categories[ps.category]; ok {
			continue
		}
		c, err := s.catalog.CreateCategory(ctx, dto.CreateCategoryRequest{Name: ps.category})
		if err != nil {
			return false, fmt.Errorf("seed: categoría %s: %w", ps.category, err)
		}
		categories[ps.category] = c.ID
	}

	platforms := make([]string, 0, len(platformSeeds))
	for _, name := range platformSeeds {
		p, err := s.catalog.CreatePlatform(ctx, dto.CreatePlatformRequest{Name: name})
		if err != nil {
			return false, fmt.Errorf("seed: plataforma %s: %w", name, err)
		}
		platforms = append(platforms, p.ID)
	}

	var stocked []string
	for _, ps := range productSeeds {
		p, err := s.products.Create(ctx, dto.CreateProductRequest{
			CategoryID: categories[ps.category],
			SKU:        ps.sku,
			Name:       ps.name,
			Price:      decimal.RequireFromString(ps.price),
		})
		if err != nil {
			return false, fmt.Errorf("seed: producto %s: %w", ps.sku, err)
		}
		if ps.stock == 0 {
			continue
		}
		th := decimal.NewFromInt(ps.threshold)
		if _, err := s.inventory.AdjustInventory(ctx, dto.AdjustInventoryRequest{
			ProductID:       p.ID,
			QuantityChanged: decimal.NewFromInt(ps.stock),
			Threshold:       &th,
			Reason:          "Initial stock",
		}); err != nil {
			return false, fmt.Errorf("seed: stock inicial %s: %w", ps.sku, err)
		}
		stocked = append(stocked, p.ID)
	}

	placed, skipped := 0, 0
	for i := 0; i < SalesCount; i++ {
		saleDate := s.now().AddDate(0, 0, -s.rng.IntN(366))
		req := dto.PlaceOrderRequest{
			PlatformID: platforms[s.rng.IntN(len(platforms))],
			SaleDate:   &saleDate,
		}
		for n := 1 + s.rng.IntN(2); n > 0; n-- {
			req.Items = append(req.Items, dto.OrderItemRequest{
				ProductID: stocked[s.rng.IntN(len(stocked))],
				Quantity:  decimal.NewFromInt(int64(1 + s.rng.IntN(3))),
			})
		}
		if _, err := s.orders.PlaceOrder(ctx, req, ""); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				skipped++
				continue
			}
			return false, fmt.Errorf("seed: venta %d: %w", i, err)
		}
		placed++
	}

	s.log.Info().Int("orders", placed).Int("skipped", skipped).Msg("datos sembrados")
	return true, nil
}
