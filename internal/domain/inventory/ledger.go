package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Límites del esquema: stock NUMERIC(5,0), umbral NUMERIC(3,0), motivo VARCHAR(200).
const (
	MaxStock        = 99999
	MaxThreshold    = 999
	MaxReasonLength = 200

	DefaultThreshold = 10
	DefaultReason    = "Stock adjustment"
)

var (
	maxStock         = decimal.NewFromInt(MaxStock)
	maxThreshold     = decimal.NewFromInt(MaxThreshold)
	defaultThreshold = decimal.NewFromInt(DefaultThreshold)
)

// IsLowStock es la alerta de stock bajo: QuantityAfter <= Threshold. Nunca se persiste.
func IsLowStock(e *entity.InventoryAdjustment) bool {
	return e.QuantityAfter.LessThanOrEqual(e.Threshold)
}

// CurrentStock proyecta el stock actual desde la última entrada del libro.
// ok es false si el producto no tiene entradas (stock indefinido, no cero).
func CurrentStock(latest *entity.InventoryAdjustment) (quantity, threshold decimal.Decimal, ok bool) {
	if latest == nil {
		return decimal.Zero, decimal.Zero, false
	}
	return latest.QuantityAfter, latest.Threshold, true
}

// NextEntry construye la entrada que sigue a prev (nil si es la primera del producto).
// Si threshold es nil se hereda el de prev, o DefaultThreshold si no hay historial.
// El resultado ya está validado con ValidateEntry.
func NextEntry(
	productID string,
	prev *entity.InventoryAdjustment,
	changed decimal.Decimal,
	threshold *decimal.Decimal,
	reason string,
	at time.Time,
) (*entity.InventoryAdjustment, error) {
	before := decimal.Zero
	seq := int64(1)
	th := defaultThreshold
	if prev != nil {
		before = prev.QuantityAfter
		seq = prev.Sequence + 1
		th = prev.Threshold
	}
	if threshold != nil {
		th = *threshold
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReason
	}
	e := &entity.InventoryAdjustment{
		ProductID:       productID,
		Sequence:        seq,
		QuantityBefore:  before,
		QuantityChanged: changed,
		QuantityAfter:   before.Add(changed),
		Threshold:       th,
		Reason:          reason,
		CreatedAt:       at,
	}
	if err := ValidateEntry(e); err != nil {
		return nil, err
	}
	return e, nil
}

// ValidateEntry verifica las invariantes de una entrada antes de escribirla.
// Los desbordes de dígitos son error, nunca se recortan.
func ValidateEntry(e *entity.InventoryAdjustment) error {
	if e.ProductID == "" {
		return domain.ConstraintViolation("product_id", "requerido")
	}
	if e.Sequence < 1 {
		return domain.ConstraintViolation("sequence", "debe ser >= 1")
	}
	if !IsWhole(e.QuantityBefore) || !IsWhole(e.QuantityChanged) || !IsWhole(e.QuantityAfter) {
		return domain.ConstraintViolation("quantity", "las cantidades deben ser enteras")
	}
	if !e.QuantityBefore.Add(e.QuantityChanged).Equal(e.QuantityAfter) {
		return domain.ConstraintViolation("quantity_after", "%s + %s != %s",
			e.QuantityBefore, e.QuantityChanged, e.QuantityAfter)
	}
	if e.QuantityBefore.IsNegative() || e.QuantityBefore.GreaterThan(maxStock) {
		return domain.ConstraintViolation("quantity_before", "%s fuera de [0, %d]", e.QuantityBefore, MaxStock)
	}
	if e.QuantityAfter.IsNegative() {
		return domain.ConstraintViolation("quantity_after", "el stock no puede quedar negativo (%s)", e.QuantityAfter)
	}
	if e.QuantityAfter.GreaterThan(maxStock) {
		return domain.ConstraintViolation("quantity_after", "%s supera el máximo %d", e.QuantityAfter, MaxStock)
	}
	if !IsWhole(e.Threshold) || e.Threshold.IsNegative() || e.Threshold.GreaterThan(maxThreshold) {
		return domain.ConstraintViolation("threshold", "%s fuera de [0, %d]", e.Threshold, MaxThreshold)
	}
	if len([]rune(e.Reason)) > MaxReasonLength {
		return domain.ConstraintViolation("reason", "máximo %d caracteres", MaxReasonLength)
	}
	return nil
}

// IsWhole indica si d no tiene parte fraccionaria.
func IsWhole(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}
