package inventory_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
)

var t0 = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestNextEntry_PrimeraEntradaPartedeCero(t *testing.T) {
	e, err := inventory.NextEntry("p-1", nil, dec(100), ptr(dec(10)), "Initial stock", t0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), e.Sequence)
	assert.True(t, e.QuantityBefore.IsZero())
	assert.True(t, e.QuantityAfter.Equal(dec(100)))
	assert.True(t, e.Threshold.Equal(dec(10)))
	assert.Equal(t, "Initial stock", e.Reason)
}

func TestNextEntry_ContinuidadYUmbralHeredado(t *testing.T) {
	first, err := inventory.NextEntry("p-1", nil, dec(100), ptr(dec(15)), "", t0)
	require.NoError(t, err)
	second, err := inventory.NextEntry("p-1", first, dec(-30), nil, "", t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.Sequence)
	assert.True(t, second.QuantityBefore.Equal(first.QuantityAfter), "before debe ser el after anterior")
	assert.True(t, second.QuantityAfter.Equal(dec(70)))
	assert.True(t, second.Threshold.Equal(dec(15)), "el umbral se hereda")
	assert.Equal(t, inventory.DefaultReason, second.Reason)
}

func TestNextEntry_UmbralPorDefecto(t *testing.T) {
	e, err := inventory.NextEntry("p-1", nil, dec(5), nil, "", t0)
	require.NoError(t, err)
	assert.True(t, e.Threshold.Equal(dec(inventory.DefaultThreshold)))
}

func TestNextEntry_ViolacionesDeRestriccion(t *testing.T) {
	base := &entity.InventoryAdjustment{ProductID: "p-1", Sequence: 3, QuantityAfter: dec(5), Threshold: dec(1)}

	cases := map[string]struct {
		prev      *entity.InventoryAdjustment
		changed   decimal.Decimal
		threshold *decimal.Decimal
		reason    string
	}{
		"stock negativo":        {prev: base, changed: dec(-6)},
		"supera 5 dígitos":      {prev: nil, changed: dec(100000)},
		"cantidad fraccionaria": {prev: base, changed: decimal.RequireFromString("1.5")},
		"umbral de 4 dígitos":   {prev: base, changed: dec(1), threshold: ptr(dec(1000))},
		"umbral negativo":       {prev: base, changed: dec(1), threshold: ptr(dec(-1))},
		"motivo muy largo":      {prev: base, changed: dec(1), reason: strings.Repeat("x", 201)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := inventory.NextEntry("p-1", tc.prev, tc.changed, tc.threshold, tc.reason, t0)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConstraintViolation)
		})
	}
}

func TestNextEntry_LlegarACeroEsValido(t *testing.T) {
	prev := &entity.InventoryAdjustment{ProductID: "p-1", Sequence: 1, QuantityAfter: dec(5), Threshold: dec(1)}
	e, err := inventory.NextEntry("p-1", prev, dec(-5), nil, "", t0)
	require.NoError(t, err)
	assert.True(t, e.QuantityAfter.IsZero())
	assert.True(t, inventory.IsLowStock(e))
}

func TestValidateEntry_AritmeticaInconsistente(t *testing.T) {
	e := &entity.InventoryAdjustment{
		ProductID: "p-1", Sequence: 1,
		QuantityBefore: dec(10), QuantityChanged: dec(5), QuantityAfter: dec(14),
	}
	assert.ErrorIs(t, inventory.ValidateEntry(e), domain.ErrConstraintViolation)
}

func TestIsLowStock_SeDerivaDeAfterYUmbral(t *testing.T) {
	cases := []struct {
		after, threshold int64
		want             bool
	}{
		{after: 9, threshold: 10, want: true},
		{after: 10, threshold: 10, want: true},
		{after: 11, threshold: 10, want: false},
		{after: 0, threshold: 0, want: true},
	}
	for _, tc := range cases {
		e := &entity.InventoryAdjustment{QuantityAfter: dec(tc.after), Threshold: dec(tc.threshold)}
		assert.Equal(t, tc.want, inventory.IsLowStock(e), "after=%d threshold=%d", tc.after, tc.threshold)
	}
}

func TestCurrentStock_SinHistorialNoEsCero(t *testing.T) {
	_, _, ok := inventory.CurrentStock(nil)
	assert.False(t, ok)

	q, th, ok := inventory.CurrentStock(&entity.InventoryAdjustment{QuantityAfter: dec(0), Threshold: dec(3)})
	assert.True(t, ok)
	assert.True(t, q.IsZero())
	assert.True(t, th.Equal(dec(3)))
}
