package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa la cabecera de un pedido. TotalAmount es siempre la suma de Lines[i].LineTotal.
type Order struct {
	ID          string
	PlatformID  string
	TotalAmount decimal.Decimal // NUMERIC(14,2)
	OrderDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lines       []*OrderLine
}

// OrderLine línea de pedido. UnitPrice es una copia del precio del producto al momento del pedido.
type OrderLine struct {
	ID           int64
	OrderID      string
	ProductID    string
	AdjustmentID int64 // entrada del libro que descontó esta línea
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal // Quantity * UnitPrice
	CreatedAt    time.Time
}
