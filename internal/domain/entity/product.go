package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Price es el precio vigente; cada línea de pedido guarda su propia copia (UnitPrice).
type Product struct {
	ID          string
	CategoryID  string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // NUMERIC(6,2), 0..9999.99
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
