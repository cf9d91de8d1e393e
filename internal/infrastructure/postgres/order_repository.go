package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	const query = `
		INSERT INTO orders (id, platform_id, total_amount, order_date)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query, o.ID, o.PlatformID, o.TotalAmount, o.OrderDate).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	return mapError("insert order", err)
}

// CreateLine inserta una línea enlazada a su entrada de ledger.
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	const query = `
		INSERT INTO order_lines (order_id, product_id, adjustment_id, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, l.OrderID, l.ProductID, l.AdjustmentID, l.Quantity, l.UnitPrice, l.LineTotal).
		Scan(&l.ID, &l.CreatedAt)
	return mapError("insert order line", err)
}

// UpdateTotal fija total_amount una vez creadas todas las líneas.
func (r *OrderRepo) UpdateTotal(ctx context.Context, orderID string, total decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET total_amount = $2, updated_at = $3 WHERE id = $1`,
		orderID, total, time.Now().UTC())
	if err != nil {
		return mapError("update order total", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "pedido", IDs: []string{orderID}}
	}
	return nil
}

// GetByID pedido con sus líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !isUUID(id) {
		return nil, nil
	}
	const query = `
		SELECT id, platform_id, total_amount, order_date, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.PlatformID, &o.TotalAmount, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get order", err)
	}

	const linesQuery = `
		SELECT id, order_id, product_id, adjustment_id, quantity, unit_price, line_total, created_at
		FROM order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, mapError("get order lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.AdjustmentID, &l.Quantity, &l.UnitPrice, &l.LineTotal, &l.CreatedAt); err != nil {
			return nil, mapError("get order lines", err)
		}
		o.Lines = append(o.Lines, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("get order lines", err)
	}
	return &o, nil
}
