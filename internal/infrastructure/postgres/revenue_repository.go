package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.RevenueRepository = (*RevenueRepo)(nil)

// RevenueRepo consultas de solo lectura de ingresos. Ventanas semiabiertas [start, end).
type RevenueRepo struct {
	pool *pgxpool.Pool
}

// NewRevenueRepository construye el adaptador de ingresos.
func NewRevenueRepository(pool *pgxpool.Pool) *RevenueRepo {
	return &RevenueRepo{pool: pool}
}

// SumOrderTotals suma total_amount; COALESCE devuelve cero si no hay pedidos.
func (r *RevenueRepo) SumOrderTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(o.total_amount), 0)
	FROM orders o
	WHERE o.order_date >= $1
	  AND o.order_date <  $2`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&total); err != nil {
		return decimal.Zero, mapError("revenue.SumOrderTotals", err)
	}
	return total, nil
}

// SumLineTotalsByCategory suma line_total por nombre de categoría. Solo devuelve las categorías con ventas.
func (r *RevenueRepo) SumLineTotalsByCategory(ctx context.Context, start, end time.Time, categories []string) (map[string]decimal.Decimal, error) {
	const query = `
	SELECT
	    c.name               AS category,
	    SUM(l.line_total)    AS revenue
	FROM order_lines l
	JOIN orders     o ON o.id = l.order_id
	JOIN products   p ON p.id = l.product_id
	JOIN categories c ON c.id = p.category_id
	WHERE o.order_date >= $1
	  AND o.order_date <  $2
	  AND c.name = ANY($3::text[])
	GROUP BY c.name`

	rows, err := r.pool.Query(ctx, query, start, end, categories)
	if err != nil {
		return nil, mapError("revenue.SumLineTotalsByCategory", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal, len(categories))
	for rows.Next() {
		var (
			name  string
			total decimal.Decimal
		)
		if err := rows.Scan(&name, &total); err != nil {
			return nil, mapError("revenue.SumLineTotalsByCategory scan", err)
		}
		out[name] = total
	}
	return out, mapError("revenue.SumLineTotalsByCategory", rows.Err())
}
