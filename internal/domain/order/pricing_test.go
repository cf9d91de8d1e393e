package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/order"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, order.ValidateQuantity(d("1")))
	assert.NoError(t, order.ValidateQuantity(d("99999")))

	for _, q := range []string{"0", "-3", "2.5", "100000"} {
		err := order.ValidateQuantity(d(q))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", q)
	}
}

func TestLineTotal_MultiplicaCantidadPorPrecio(t *testing.T) {
	total, err := order.LineTotal(d("30"), d("12.50"))
	require.NoError(t, err)
	assert.True(t, total.Equal(d("375")))

	// el peor caso posible cabe en NUMERIC(11,2)
	total, err = order.LineTotal(order.MaxQuantity, order.MaxUnitPrice)
	require.NoError(t, err)
	assert.True(t, total.LessThanOrEqual(order.MaxLineTotal))
}

func TestLineTotal_PrecioFueraDeRango(t *testing.T) {
	_, err := order.LineTotal(d("1"), d("10000"))
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	_, err = order.LineTotal(d("1"), d("1.999"))
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestAddToTotal_Desborde(t *testing.T) {
	sum, err := order.AddToTotal(d("10.25"), d("4.75"))
	require.NoError(t, err)
	assert.True(t, sum.Equal(d("15")))

	_, err = order.AddToTotal(order.MaxOrderTotal, d("0.01"))
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestSaleReason(t *testing.T) {
	assert.Equal(t, "Sold in order abc", order.SaleReason("abc"))
}
