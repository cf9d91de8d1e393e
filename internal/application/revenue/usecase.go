package revenue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/internal/domain/revenue"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentWindows consultas simultáneas por lote.
const maxConcurrentWindows = 4

// UseCase agregados de ingresos sobre ventanas [start, end).
type UseCase struct {
	repo repository.RevenueRepository
	loc  *time.Location
	now  func() time.Time
}

// NewUseCase construye el caso de uso. loc define los límites de día/semana/mes/año.
func NewUseCase(repo repository.RevenueRepository, loc *time.Location) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{repo: repo, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Location zona usada para interpretar fechas sin hora.
func (uc *UseCase) Location() *time.Location { return uc.loc }

// GetRevenue suma total_amount de los pedidos con start <= order_date < end. Cero si no hay pedidos.
func (uc *UseCase) GetRevenue(ctx context.Context, w revenue.Window) (decimal.Decimal, error) {
	if err := w.Validate(); err != nil {
		return decimal.Zero, err
	}
	return uc.repo.SumOrderTotals(ctx, w.Start, w.End)
}

// GetPeriodRevenue ingreso de la ventana fija (día, semana, mes o año) que contiene el instante actual.
func (uc *UseCase) GetPeriodRevenue(ctx context.Context, p revenue.Period) (revenue.Window, decimal.Decimal, error) {
	w, err := revenue.FixedWindow(p, uc.now().In(uc.loc))
	if err != nil {
		return revenue.Window{}, decimal.Zero, err
	}
	total, err := uc.GetRevenue(ctx, w)
	return w, total, err
}

// CompareRevenue un total por ventana, en el orden recibido.
// Todas las ventanas se validan antes de ejecutar cualquier consulta.
func (uc *UseCase) CompareRevenue(ctx context.Context, windows []revenue.Window) ([]decimal.Decimal, error) {
	if err := revenue.ValidateAll(windows); err != nil {
		return nil, err
	}
	out := make([]decimal.Decimal, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWindows)
	for i, w := range windows {
		g.Go(func() error {
			total, err := uc.repo.SumOrderTotals(gctx, w.Start, w.End)
			if err != nil {
				return fmt.Errorf("periodo %d: %w", i, err)
			}
			out[i] = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// CompareRevenueByCategory por cada ventana, la suma de line_total de cada categoría pedida.
// Las categorías sin ventas (o inexistentes) reportan cero.
func (uc *UseCase) CompareRevenueByCategory(ctx context.Context, categories []string, windows []revenue.Window) ([]map[string]decimal.Decimal, error) {
	names, err := normalizeCategories(categories)
	if err != nil {
		return nil, err
	}
	if err := revenue.ValidateAll(windows); err != nil {
		return nil, err
	}
	out := make([]map[string]decimal.Decimal, len(windows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWindows)
	for i, w := range windows {
		g.Go(func() error {
			sums, err := uc.repo.SumLineTotalsByCategory(gctx, w.Start, w.End, names)
			if err != nil {
				return fmt.Errorf("periodo %d: %w", i, err)
			}
			row := make(map[string]decimal.Decimal, len(names))
			for _, n := range names {
				row[n] = decimal.Zero
				if v, ok := sums[n]; ok {
					row[n] = v
				}
			}
			out[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeCategories(categories []string) ([]string, error) {
	seen := make(map[string]bool, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		names = append(names, c)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una categoría", domain.ErrInvalidInput)
	}
	return names, nil
}
