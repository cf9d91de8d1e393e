package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.InventoryAdjustmentRepository = (*InventoryAdjustmentRepo)(nil)

const adjustmentColumns = `id, product_id, sequence, quantity_before, quantity_changed, quantity_after, threshold, reason, created_at`

// InventoryAdjustmentRepo ledger de inventario (solo inserción) sobre PostgreSQL.
type InventoryAdjustmentRepo struct {
	q Querier
}

// NewInventoryAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAdjustmentRepository(q Querier) *InventoryAdjustmentRepo {
	return &InventoryAdjustmentRepo{q: q}
}

func scanAdjustment(row pgx.Row) (*entity.InventoryAdjustment, error) {
	var e entity.InventoryAdjustment
	err := row.Scan(&e.ID, &e.ProductID, &e.Sequence, &e.QuantityBefore, &e.QuantityChanged,
		&e.QuantityAfter, &e.Threshold, &e.Reason, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Append inserta la entrada. UNIQUE(product_id, sequence) convierte una escritura concurrente
// no serializada en ErrConflict.
func (r *InventoryAdjustmentRepo) Append(ctx context.Context, e *entity.InventoryAdjustment) error {
	const query = `
		INSERT INTO inventory_adjustments
		    (product_id, sequence, quantity_before, quantity_changed, quantity_after, threshold, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		e.ProductID, e.Sequence, e.QuantityBefore, e.QuantityChanged, e.QuantityAfter,
		e.Threshold, e.Reason, e.CreatedAt,
	).Scan(&e.ID)
	return mapError("append inventory adjustment", err)
}

// Latest última entrada por sequence.
func (r *InventoryAdjustmentRepo) Latest(ctx context.Context, productID string) (*entity.InventoryAdjustment, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	const query = `
		SELECT ` + adjustmentColumns + `
		FROM inventory_adjustments
		WHERE product_id = $1
		ORDER BY sequence DESC
		LIMIT 1`
	e, err := scanAdjustment(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("latest inventory adjustment", err)
	}
	return e, nil
}

// LatestByProducts última entrada de cada producto (DISTINCT ON).
func (r *InventoryAdjustmentRepo) LatestByProducts(ctx context.Context, productIDs []string) (map[string]*entity.InventoryAdjustment, error) {
	out := make(map[string]*entity.InventoryAdjustment, len(productIDs))
	ids := validUUIDs(productIDs)
	if len(ids) == 0 {
		return out, nil
	}
	const query = `
		SELECT DISTINCT ON (product_id) ` + adjustmentColumns + `
		FROM inventory_adjustments
		WHERE product_id = ANY($1::uuid[])
		ORDER BY product_id, sequence DESC`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, mapError("latest inventory adjustments", err)
	}
	defer rows.Close()
	for rows.Next() {
		e, err := scanAdjustment(rows)
		if err != nil {
			return nil, mapError("latest inventory adjustments", err)
		}
		out[e.ProductID] = e
	}
	return out, mapError("latest inventory adjustments", rows.Err())
}

// ListByProduct historial más reciente primero.
func (r *InventoryAdjustmentRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	if !isUUID(productID) {
		return nil, nil
	}
	const query = `
		SELECT ` + adjustmentColumns + `
		FROM inventory_adjustments
		WHERE product_id = $1
		ORDER BY sequence DESC
		LIMIT $2 OFFSET $3`
	return r.list(ctx, "list inventory adjustments", query, productID, limit, offset)
}

// CountByProduct cantidad de entradas del producto.
func (r *InventoryAdjustmentRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	if !isUUID(productID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_adjustments WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, mapError("count inventory adjustments", err)
	}
	return n, nil
}

// latestPerProduct CTE con la última entrada de cada producto.
const latestPerProduct = `
	WITH latest AS (
	    SELECT DISTINCT ON (product_id) ` + adjustmentColumns + `
	    FROM inventory_adjustments
	    ORDER BY product_id, sequence DESC
	)`

// ListLowStock productos cuya última entrada tiene quantity_after <= threshold.
func (r *InventoryAdjustmentRepo) ListLowStock(ctx context.Context, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	const query = latestPerProduct + `
	SELECT ` + adjustmentColumns + `
	FROM latest
	WHERE quantity_after <= threshold
	ORDER BY quantity_after, product_id
	LIMIT $1 OFFSET $2`
	return r.list(ctx, "list low stock", query, limit, offset)
}

// CountLowStock total de productos con stock bajo.
func (r *InventoryAdjustmentRepo) CountLowStock(ctx context.Context) (int, error) {
	const query = latestPerProduct + `
	SELECT COUNT(*) FROM latest WHERE quantity_after <= threshold`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, mapError("count low stock", err)
	}
	return n, nil
}

func (r *InventoryAdjustmentRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryAdjustment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.InventoryAdjustment
	for rows.Next() {
		e, err := scanAdjustment(rows)
		if err != nil {
			return nil, mapError(op, err)
		}
		list = append(list, e)
	}
	return list, mapError(op, rows.Err())
}
