package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para POST /api/v1/inventory y PUT /api/v1/inventory/product/:product_id.
// Threshold nil hereda el umbral de la última entrada.
type AdjustInventoryRequest struct {
	ProductID       string           `json:"product_id"`
	QuantityChanged decimal.Decimal  `json:"quantity_changed"`
	Threshold       *decimal.Decimal `json:"threshold,omitempty"`
	Reason          string           `json:"reason,omitempty"`
}

// ProductSummary datos del producto embebidos en respuestas de inventario.
type ProductSummary struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"category_id"`
}

// AdjustmentResponse una entrada del ledger con su alerta derivada.
type AdjustmentResponse struct {
	ID              int64           `json:"id"`
	ProductID       string          `json:"product_id"`
	Sequence        int64           `json:"sequence"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityChanged decimal.Decimal `json:"quantity_changed"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	Threshold       decimal.Decimal `json:"threshold"`
	Reason          string          `json:"reason"`
	CreatedAt       time.Time       `json:"created_at"`
	Alert           bool            `json:"alert"`
	Product         *ProductSummary `json:"product,omitempty"`
}

// InventoryHistoryResponse historial paginado, más reciente primero.
type InventoryHistoryResponse struct {
	Items      []AdjustmentResponse `json:"items"`
	Pagination Pagination           `json:"pagination"`
}
