package seed_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/inventory"
	"github.com/jhoicas/backoffice-api/internal/application/order"
	"github.com/jhoicas/backoffice-api/internal/application/seed"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/testutil/memstore"
)

func newSeeder(s *memstore.Store) *seed.Seeder {
	log := zerolog.Nop()
	return seed.NewSeeder(
		usecase.NewCatalogUseCase(s.Categories(), s.Platforms()),
		usecase.NewProductUseCase(s.Products(), s.Categories()),
		inventory.NewAdjustmentUseCase(s, s.Products(), s.Ledger(), log),
		order.NewPlaceOrderUseCase(s, s.Platforms(), s.Orders(), 1, log),
		log,
		42,
	)
}

func TestSeeder_SiembraUnaSolaVez(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	seeded, err := newSeeder(s).Run(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	n, err := s.Products().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	orders, lines, _ := s.Counts()
	assert.Positive(t, orders)
	assert.GreaterOrEqual(t, lines, orders)

	// cada venta sembrada respeta la consistencia del total
	for _, o := range s.AllOrders() {
		sum := o.Lines[0].LineTotal
		for _, l := range o.Lines[1:] {
			sum = sum.Add(l.LineTotal)
		}
		assert.True(t, o.TotalAmount.Equal(sum), "pedido %s", o.ID)
	}

	seeded, err = newSeeder(s).Run(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
	again, _, _ := s.Counts()
	assert.Equal(t, orders, again)
}
