package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	mg, err := NewMigrator(url)
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Close())

	pool, err := NewPool(context.Background(), config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

type pgFixture struct {
	pool     *pgxpool.Pool
	category *entity.Category
	platform *entity.Platform
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	pool := testPool(t)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	c := &entity.Category{ID: uuid.NewString(), Name: "cat-" + suffix, SKU: "C" + suffix}
	require.NoError(t, NewCategoryRepository(pool).Create(ctx, c))
	p := &entity.Platform{ID: uuid.NewString(), Name: "plat-" + suffix}
	require.NoError(t, NewPlatformRepository(pool).Create(ctx, p))
	return &pgFixture{pool: pool, category: c, platform: p}
}

func (f *pgFixture) product(t *testing.T, price string) *entity.Product {
	t.Helper()
	suffix := uuid.NewString()[:8]
	p := &entity.Product{
		ID:         uuid.NewString(),
		CategoryID: f.category.ID,
		SKU:        "P" + suffix,
		Name:       "prod-" + suffix,
		Price:      decimal.RequireFromString(price),
		Published:  true,
	}
	require.NoError(t, NewProductRepository(f.pool).Create(context.Background(), p))
	return p
}

func (f *pgFixture) adjust(t *testing.T, productID string, changed int64) *dto.AdjustmentResponse {
	t.Helper()
	uc := inventory.NewAdjustmentUseCase(NewTxRunner(f.pool), NewProductRepository(f.pool),
		NewInventoryAdjustmentRepository(f.pool), zerolog.Nop())
	resp, err := uc.AdjustInventory(context.Background(), dto.AdjustInventoryRequest{
		ProductID:       productID,
		QuantityChanged: decimal.NewFromInt(changed),
	})
	require.NoError(t, err)
	return resp
}

func (f *pgFixture) orders(maxAttempts int) *order.PlaceOrderUseCase {
	return order.NewPlaceOrderUseCase(NewTxRunner(f.pool), NewPlatformRepository(f.pool),
		NewOrderRepository(f.pool), maxAttempts, zerolog.Nop())
}

func TestPG_LedgerEncadenaYEsSoloInsercion(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	p := f.product(t, "10.00")

	first := f.adjust(t, p.ID, 100)
	second := f.adjust(t, p.ID, -30)
	assert.Equal(t, int64(1), first.Sequence)
	assert.Equal(t, int64(2), second.Sequence)
	assert.True(t, second.QuantityBefore.Equal(first.QuantityAfter))
	assert.True(t, second.QuantityAfter.Equal(decimal.NewFromInt(70)))

	repo := NewInventoryAdjustmentRepository(f.pool)
	latest, err := repo.Latest(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	_, err = f.pool.Exec(ctx, `UPDATE inventory_adjustments SET reason = 'x' WHERE id = $1`, first.ID)
	assert.ErrorIs(t, mapError("update ledger", err), domain.ErrConstraintViolation)

	_, err = f.pool.Exec(ctx, `DELETE FROM inventory_adjustments WHERE id = $1`, first.ID)
	assert.ErrorIs(t, mapError("delete ledger", err), domain.ErrConstraintViolation)
}

func TestPG_SecuenciaDuplicadaEsConflicto(t *testing.T) {
	f := newPGFixture(t)
	p := f.product(t, "1.00")
	f.adjust(t, p.ID, 5)

	dup := &entity.InventoryAdjustment{
		ProductID:       p.ID,
		Sequence:        1,
		QuantityChanged: decimal.NewFromInt(5),
		QuantityAfter:   decimal.NewFromInt(5),
		Threshold:       decimal.NewFromInt(10),
		Reason:          "dup",
		CreatedAt:       time.Now().UTC(),
	}
	err := NewInventoryAdjustmentRepository(f.pool).Append(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPG_PedidoDescuentaYSumaIngresos(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	p := f.product(t, "199.99")
	f.adjust(t, p.ID, 10)

	saleDate := time.Date(2031, 3, 14, 12, 0, 0, 0, time.UTC)
	resp, err := f.orders(3).PlaceOrder(ctx, dto.PlaceOrderRequest{
		PlatformID: f.platform.ID,
		Items:      []dto.OrderItemRequest{{ProductID: p.ID, Quantity: decimal.NewFromInt(3)}},
		SaleDate:   &saleDate,
	}, "")
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("599.97")))

	latest, err := NewInventoryAdjustmentRepository(f.pool).Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, latest.QuantityAfter.Equal(decimal.NewFromInt(7)))

	got, err := NewOrderRepository(f.pool).GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, latest.ID, got.Lines[0].AdjustmentID)

	rev := NewRevenueRepository(f.pool)
	byCat, err := rev.SumLineTotalsByCategory(ctx, saleDate.Add(-time.Hour), saleDate.Add(time.Hour), []string{f.category.Name})
	require.NoError(t, err)
	assert.True(t, byCat[f.category.Name].Equal(decimal.RequireFromString("599.97")))

	// Semiabierta: la venta en end no cuenta.
	byCat, err = rev.SumLineTotalsByCategory(ctx, saleDate.Add(-time.Hour), saleDate, []string{f.category.Name})
	require.NoError(t, err)
	_, ok := byCat[f.category.Name]
	assert.False(t, ok)
}

func TestPG_StockInsuficienteNoEscribe(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	p := f.product(t, "5.00")
	f.adjust(t, p.ID, 2)

	_, err := f.orders(3).PlaceOrder(ctx, dto.PlaceOrderRequest{
		PlatformID: f.platform.ID,
		Items:      []dto.OrderItemRequest{{ProductID: p.ID, Quantity: decimal.NewFromInt(3)}},
	}, "")
	var shortage *domain.InsufficientStockError
	require.True(t, errors.As(err, &shortage))

	n, err := NewInventoryAdjustmentRepository(f.pool).CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPG_PedidosConcurrentesNoSobrevenden(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	p := f.product(t, "1.00")
	f.adjust(t, p.ID, 10)
	uc := f.orders(5)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceOrder(ctx, dto.PlaceOrderRequest{
				PlatformID: f.platform.ID,
				Items:      []dto.OrderItemRequest{{ProductID: p.ID, Quantity: decimal.NewFromInt(1)}},
			}, "")
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	latest, err := NewInventoryAdjustmentRepository(f.pool).Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, latest.QuantityAfter.IsZero())
}

func TestPG_IDsNoUUIDNoExisten(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	p, err := NewProductRepository(pool).GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, p)

	m, err := NewProductRepository(pool).GetByIDs(ctx, []string{"x", "y"})
	require.NoError(t, err)
	assert.Empty(t, m)
}
