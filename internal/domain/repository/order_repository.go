package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderRepository persistencia de pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	UpdateTotal(ctx context.Context, orderID string, total decimal.Decimal) error
	// GetByID devuelve el pedido con sus líneas o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}
