package order

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta el pedido completo en una sola transacción: bloqueo de productos,
// entradas de ledger, líneas y total. Cualquier error hace Rollback de todo.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.InventoryAdjustmentRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// IdempotencyGuard reserva claves Idempotency-Key. Reserve devuelve false si la clave ya existe.
// Complete asocia la clave al pedido confirmado y Lookup lo recupera ("" mientras el pedido
// sigue en curso).
type IdempotencyGuard interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Complete(ctx context.Context, key, orderID string) error
	Lookup(ctx context.Context, key string) (string, error)
	Release(ctx context.Context, key string) error
}
