package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	apprevenue "github.com/jhoicas/backoffice-api/internal/application/revenue"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/revenue"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RevenueHandler reportes de ingresos (solo lectura).
type RevenueHandler struct {
	uc  *apprevenue.UseCase
	log zerolog.Logger
}

// NewRevenueHandler construye el handler.
func NewRevenueHandler(uc *apprevenue.UseCase, log zerolog.Logger) *RevenueHandler {
	return &RevenueHandler{uc: uc, log: log}
}

// GetPeriod godoc
// @Summary      Ingresos del periodo actual
// @Tags         revenue
// @Security     Bearer
// @Produce      json
// @Param        period  path      string  true  "daily | weekly | monthly | annual"
// @Success      200     {object}  dto.RevenueResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/v1/revenue/{period} [get]
func (h *RevenueHandler) GetPeriod(c *fiber.Ctx) error {
	p, err := revenue.ParsePeriod(c.Params("period"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	w, total, err := h.uc.GetPeriodRevenue(c.Context(), p)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RevenueResponse{StartDate: w.Start, EndDate: w.End, Revenue: total})
}

// GetCustom godoc
// @Summary      Ingresos de un rango
// @Description  Suma de pedidos con start_date <= order_date < end_date.
// @Tags         revenue
// @Security     Bearer
// @Produce      json
// @Param        start_date  query     string  true  "RFC3339 o YYYY-MM-DD"
// @Param        end_date    query     string  true  "RFC3339 o YYYY-MM-DD"
// @Success      200         {object}  dto.RevenueResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/v1/revenue/custom [get]
func (h *RevenueHandler) GetCustom(c *fiber.Ctx) error {
	w, err := h.window(dto.PeriodRequest{StartDate: c.Query("start_date"), EndDate: c.Query("end_date")})
	if err != nil {
		return writeError(c, h.log, err)
	}
	total, err := h.uc.GetRevenue(c.Context(), w)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RevenueResponse{StartDate: w.Start, EndDate: w.End, Revenue: total})
}

// Compare godoc
// @Summary      Comparar ingresos entre periodos
// @Description  Un total por periodo, en el orden recibido.
// @Tags         revenue
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CompareRevenueRequest  true  "periods"
// @Success      200   {array}   string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/revenue/compare [post]
func (h *RevenueHandler) Compare(c *fiber.Ctx) error {
	var in dto.CompareRevenueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	windows, err := h.windows(in.Periods)
	if err != nil {
		return writeError(c, h.log, err)
	}
	totals, err := h.uc.CompareRevenue(c.Context(), windows)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(totals)
}

// CompareByCategory godoc
// @Summary      Comparar ingresos por categoría
// @Description  Por cada periodo, un mapa categoría -> ingreso. Las categorías sin ventas reportan 0.
// @Tags         revenue
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CompareByCategoryRequest  true  "categories, periods"
// @Success      200   {array}   map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/revenue/compare-by-category [post]
func (h *RevenueHandler) CompareByCategory(c *fiber.Ctx) error {
	var in dto.CompareByCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	windows, err := h.windows(in.Periods)
	if err != nil {
		return writeError(c, h.log, err)
	}
	rows, err := h.uc.CompareRevenueByCategory(c.Context(), in.Categories, windows)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if rows == nil {
		rows = []map[string]decimal.Decimal{}
	}
	return c.JSON(rows)
}

func (h *RevenueHandler) windows(periods []dto.PeriodRequest) ([]revenue.Window, error) {
	out := make([]revenue.Window, 0, len(periods))
	for i, p := range periods {
		w, err := h.window(p)
		if err != nil {
			return nil, fmt.Errorf("periodo %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

func (h *RevenueHandler) window(p dto.PeriodRequest) (revenue.Window, error) {
	start, err := parseDate(p.StartDate, h.uc.Location())
	if err != nil {
		return revenue.Window{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := parseDate(p.EndDate, h.uc.Location())
	if err != nil {
		return revenue.Window{}, fmt.Errorf("end_date: %w", err)
	}
	return revenue.Window{Start: start, End: end}, nil
}

// parseDate acepta RFC3339 o YYYY-MM-DD (medianoche en loc).
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: fecha obligatoria", domain.ErrInvalidInput)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: fecha %q no es RFC3339 ni YYYY-MM-DD", domain.ErrInvalidInput, s)
}
