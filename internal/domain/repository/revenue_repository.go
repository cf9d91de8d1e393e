package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRepository agregados de ingresos sobre [start, end).
type RevenueRepository interface {
	SumOrderTotals(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// SumLineTotalsByCategory solo incluye las categorías pedidas que tuvieron ventas.
	SumLineTotalsByCategory(ctx context.Context, start, end time.Time, categories []string) (map[string]decimal.Decimal, error)
}
