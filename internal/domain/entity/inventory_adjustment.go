package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAdjustment es una entrada del libro de inventario (append-only).
// QuantityAfter = QuantityBefore + QuantityChanged; Sequence ordena las entradas de un producto
// y QuantityBefore debe coincidir con el QuantityAfter de la entrada anterior (o 0 si es la primera).
type InventoryAdjustment struct {
	ID              int64
	ProductID       string
	Sequence        int64
	QuantityBefore  decimal.Decimal
	QuantityChanged decimal.Decimal // negativo en salidas
	QuantityAfter   decimal.Decimal
	Threshold       decimal.Decimal // piso de alerta de stock bajo
	Reason          string
	CreatedAt       time.Time
}
