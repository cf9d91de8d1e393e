// Package bootstrap arma los casos de uso sobre PostgreSQL (y Redis si está configurado)
// para cmd/api y cmd/backofficectl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/application/revenue"
	"github.com/jhoicas/backoffice-api/internal/application/seed"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/cache"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Services casos de uso listos para el router o la CLI.
type Services struct {
	Pool      *pgxpool.Pool
	Redis     *redis.Client // nil si REDIS_ADDR está vacío
	Products  *usecase.ProductUseCase
	Catalog   *usecase.CatalogUseCase
	Inventory *inventory.AdjustmentUseCase
	Orders    *order.PlaceOrderUseCase
	Revenue   *revenue.UseCase
	log       *logger.Logger
}

// Migrate aplica las migraciones embebidas.
func Migrate(cfg config.DBConfig) error {
	mg, err := postgres.NewMigrator(cfg.ConnectionString())
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

// New conecta PostgreSQL (y Redis) y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg.DB); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	loc, err := cfg.Report.Location()
	if err != nil {
		pool.Close()
		return nil, err
	}

	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	platformRepo := postgres.NewPlatformRepository(pool)
	ledgerRepo := postgres.NewInventoryAdjustmentRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	s := &Services{
		Pool:      pool,
		Products:  usecase.NewProductUseCase(productRepo, categoryRepo),
		Catalog:   usecase.NewCatalogUseCase(categoryRepo, platformRepo),
		Inventory: inventory.NewAdjustmentUseCase(txRunner, productRepo, ledgerRepo, log.Component("inventory")),
		Orders:    order.NewPlaceOrderUseCase(txRunner, platformRepo, orderRepo, cfg.Order.MaxAttempts, log.Component("orders")),
		Revenue:   revenue.NewUseCase(postgres.NewRevenueRepository(pool), loc),
		log:       log,
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, err
		}
		s.Redis = client
		s.Orders.WithIdempotency(cache.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotencia de pedidos en Redis")
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: Idempotency-Key desactivado")
	}
	return s, nil
}

// Seed siembra datos de ejemplo si la base no tiene productos.
func (s *Services) Seed(ctx context.Context, rngSeed uint64) (bool, error) {
	seeder := seed.NewSeeder(s.Catalog, s.Products, s.Inventory, s.Orders, s.log.Component("seed"), rngSeed)
	return seeder.Run(ctx)
}

// Close libera conexiones.
func (s *Services) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	s.Pool.Close()
}
