package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea del pedido.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// PlaceOrderRequest body para POST /api/v1/orders. SaleDate nil usa la hora actual.
type PlaceOrderRequest struct {
	PlatformID string             `json:"platform_id"`
	Items      []OrderItemRequest `json:"items"`
	SaleDate   *time.Time         `json:"sale_date,omitempty"`
}

// OrderLineResponse línea confirmada, enlazada a su entrada de ledger.
type OrderLineResponse struct {
	ID           int64           `json:"id"`
	ProductID    string          `json:"product_id"`
	AdjustmentID int64           `json:"adjustment_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID          string              `json:"id"`
	PlatformID  string              `json:"platform_id"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	OrderDate   time.Time           `json:"order_date"`
	CreatedAt   time.Time           `json:"created_at"`
	Lines       []OrderLineResponse `json:"lines"`
}
