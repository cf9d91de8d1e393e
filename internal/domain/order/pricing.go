package order

import (
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Límites de las columnas numéricas de pedidos (NUMERIC(6,2), (11,2), (14,2) y (5,0)).
var (
	MaxUnitPrice  = decimal.RequireFromString("9999.99")
	MaxLineTotal  = decimal.RequireFromString("999999999.99")
	MaxOrderTotal = decimal.RequireFromString("999999999999.99")
	MaxQuantity   = decimal.NewFromInt(99999)
)

// SaleReason motivo que queda en el ledger por cada línea vendida.
func SaleReason(orderID string) string {
	return fmt.Sprintf("Sold in order %s", orderID)
}

// ValidateQuantity cantidad pedida: entera, positiva y de máximo 5 dígitos.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.Equal(q.Truncate(0)) {
		return fmt.Errorf("%w: la cantidad debe ser entera (recibido %s)", domain.ErrInvalidInput, q)
	}
	if !q.IsPositive() {
		return fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if q.GreaterThan(MaxQuantity) {
		return fmt.Errorf("%w: la cantidad excede %s", domain.ErrInvalidInput, MaxQuantity)
	}
	return nil
}

// ValidatePrice precio de catálogo en [0, 9999.99] con dos decimales.
func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(MaxUnitPrice) {
		return domain.ConstraintViolation("price", "debe estar entre 0 y %s (recibido %s)", MaxUnitPrice, p)
	}
	if !p.Equal(p.Round(2)) {
		return domain.ConstraintViolation("price", "máximo dos decimales (recibido %s)", p)
	}
	return nil
}

// LineTotal calcula quantity × unitPrice validando el ancho de line_total.
func LineTotal(quantity, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidatePrice(unitPrice); err != nil {
		return decimal.Zero, err
	}
	total := quantity.Mul(unitPrice)
	if total.GreaterThan(MaxLineTotal) {
		return decimal.Zero, domain.ConstraintViolation("line_total", "%s excede %s", total, MaxLineTotal)
	}
	return total, nil
}

// AddToTotal acumula una línea al total del pedido sin exceder NUMERIC(14,2).
func AddToTotal(total, line decimal.Decimal) (decimal.Decimal, error) {
	next := total.Add(line)
	if next.GreaterThan(MaxOrderTotal) {
		return decimal.Zero, domain.ConstraintViolation("total_amount", "%s excede %s", next, MaxOrderTotal)
	}
	return next, nil
}
