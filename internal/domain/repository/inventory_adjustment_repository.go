package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// InventoryAdjustmentRepository ledger de inventario: solo inserción.
// Las entradas de un producto se ordenan por sequence.
type InventoryAdjustmentRepository interface {
	// Append inserta la entrada y asigna su ID. Un (product_id, sequence) repetido es ErrConflict.
	Append(ctx context.Context, entry *entity.InventoryAdjustment) error
	// Latest devuelve la última entrada del producto o (nil, nil) si no tiene historial.
	Latest(ctx context.Context, productID string) (*entity.InventoryAdjustment, error)
	LatestByProducts(ctx context.Context, productIDs []string) (map[string]*entity.InventoryAdjustment, error)
	// ListByProduct historial más reciente primero.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryAdjustment, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
	// ListLowStock productos cuya última entrada cumple quantity_after <= threshold.
	ListLowStock(ctx context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error)
	CountLowStock(ctx context.Context) (int, error)
}
