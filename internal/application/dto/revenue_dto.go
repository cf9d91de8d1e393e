package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodRequest ventana [start_date, end_date). Acepta RFC3339 o YYYY-MM-DD.
type PeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CompareRevenueRequest body para POST /api/v1/revenue/compare.
type CompareRevenueRequest struct {
	Periods []PeriodRequest `json:"periods"`
}

// CompareByCategoryRequest body para POST /api/v1/revenue/compare-by-category.
type CompareByCategoryRequest struct {
	Categories []string        `json:"categories"`
	Periods    []PeriodRequest `json:"periods"`
}

// RevenueResponse ingreso de una ventana.
type RevenueResponse struct {
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Revenue   decimal.Decimal `json:"revenue"`
}
