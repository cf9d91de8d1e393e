package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
	domorder "github.com/jhoicas/backoffice-api/internal/domain/order"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PlaceOrderUseCase motor de pedidos: valida contra el stock actual y confirma todas las líneas
// o ninguna.
type PlaceOrderUseCase struct {
	txRunner     TxRunner
	platformRepo repository.PlatformRepository
	orderRepo    repository.OrderRepository
	guard        IdempotencyGuard
	maxAttempts  int
	log          zerolog.Logger
	now          func() time.Time
	newID        func() string
}

// NewPlaceOrderUseCase construye el caso de uso. maxAttempts < 1 se trata como 1.
func NewPlaceOrderUseCase(
	txRunner TxRunner,
	platformRepo repository.PlatformRepository,
	orderRepo repository.OrderRepository,
	maxAttempts int,
	log zerolog.Logger,
) *PlaceOrderUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PlaceOrderUseCase{
		txRunner:     txRunner,
		platformRepo: platformRepo,
		orderRepo:    orderRepo,
		maxAttempts:  maxAttempts,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
}

// WithIdempotency activa la deduplicación por Idempotency-Key.
func (uc *PlaceOrderUseCase) WithIdempotency(guard IdempotencyGuard) *PlaceOrderUseCase {
	uc.guard = guard
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *PlaceOrderUseCase) WithClock(now func() time.Time) *PlaceOrderUseCase {
	uc.now = now
	return uc
}

type lineInput struct {
	productID string
	quantity  decimal.Decimal
}

// PlaceOrder crea el pedido. idempotencyKey vacío desactiva la deduplicación.
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest, idempotencyKey string) (*dto.OrderResponse, error) {
	lines, err := validateRequest(req)
	if err != nil {
		return nil, err
	}
	platformID := domain.CanonicalID(req.PlatformID)
	platform, err := uc.platformRepo.GetByID(ctx, platformID)
	if err != nil {
		return nil, classify("buscar plataforma", err)
	}
	if platform == nil {
		return nil, &domain.NotFoundError{Resource: "plataforma", IDs: []string{platformID}}
	}

	orderDate := uc.now()
	if req.SaleDate != nil {
		orderDate = req.SaleDate.UTC()
	}

	guarded := idempotencyKey != "" && uc.guard != nil
	if guarded {
		ok, err := uc.guard.Reserve(ctx, idempotencyKey)
		if err != nil {
			return nil, domain.Persistence("reservar idempotency key", err)
		}
		if !ok {
			return uc.replay(ctx, idempotencyKey)
		}
	}

	order, err := uc.placeWithRetry(ctx, platformID, lines, orderDate)
	// La clave se actualiza aunque el cliente haya cancelado la petición.
	bg := context.WithoutCancel(ctx)
	if err != nil {
		if guarded {
			if relErr := uc.guard.Release(bg, idempotencyKey); relErr != nil {
				uc.log.Error().Err(relErr).Str("key", idempotencyKey).Msg("no se pudo liberar la idempotency key")
			}
		}
		return nil, err
	}
	if guarded {
		if cErr := uc.guard.Complete(bg, idempotencyKey, order.ID); cErr != nil {
			uc.log.Error().Err(cErr).Str("key", idempotencyKey).Str("order_id", order.ID).Msg("no se pudo registrar el pedido en la idempotency key")
		}
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// replay devuelve el pedido ya confirmado con la misma clave. Si el primer pedido sigue en curso
// la solicitud es ErrDuplicateRequest.
func (uc *PlaceOrderUseCase) replay(ctx context.Context, key string) (*dto.OrderResponse, error) {
	orderID, err := uc.guard.Lookup(ctx, key)
	if err != nil {
		return nil, domain.Persistence("consultar idempotency key", err)
	}
	if orderID == "" {
		return nil, fmt.Errorf("%w: Idempotency-Key %q en curso", domain.ErrDuplicateRequest, key)
	}
	uc.log.Info().Str("key", key).Str("order_id", orderID).Msg("pedido repetido, se devuelve el original")
	return uc.GetOrder(ctx, orderID)
}

// placeWithRetry repite la transacción completa ante ErrConflict (serialización, deadlock o
// choque de secuencia en el ledger).
func (uc *PlaceOrderUseCase) placeWithRetry(ctx context.Context, platformID string, lines []lineInput, orderDate time.Time) (*entity.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		order, err := uc.placeOnce(ctx, platformID, lines, orderDate)
		if err == nil {
			uc.log.Info().
				Str("order_id", order.ID).
				Str("total", order.TotalAmount.String()).
				Int("lines", len(order.Lines)).
				Int("attempt", attempt).
				Msg("pedido confirmado")
			return order, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, classify("confirmar pedido", err)
		}
		lastErr = err
		uc.log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", uc.maxAttempts).Msg("conflicto de concurrencia, reintentando pedido")
	}
	return nil, domain.Persistence(fmt.Sprintf("confirmar pedido tras %d intentos", uc.maxAttempts), lastErr)
}

func (uc *PlaceOrderUseCase) placeOnce(ctx context.Context, platformID string, lines []lineInput, orderDate time.Time) (*entity.Order, error) {
	var order *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.InventoryAdjustmentRepository,
		orderRepo repository.OrderRepository,
	) error {
		ids, requested := aggregate(lines)

		lockIDs := append([]string(nil), ids...)
		sort.Strings(lockIDs)
		products, err := productRepo.LockByIDs(ctx, lockIDs)
		if err != nil {
			return err
		}
		var missing []string
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				missing = append(missing, id)
			}
		}
		if len(missing) > 0 {
			return &domain.NotFoundError{Resource: "producto", IDs: missing}
		}

		latest, err := ledgerRepo.LatestByProducts(ctx, ids)
		if err != nil {
			return err
		}
		var shortages []domain.StockShortage
		for _, id := range ids {
			qty, _, ok := inventory.CurrentStock(latest[id])
			if !ok || qty.LessThan(requested[id]) {
				shortages = append(shortages, domain.StockShortage{
					ProductID: id,
					Requested: requested[id],
					Available: qty,
					HasRecord: ok,
				})
			}
		}
		if len(shortages) > 0 {
			return &domain.InsufficientStockError{Shortages: shortages}
		}

		// Montos validados antes de escribir.
		lineTotals := make([]decimal.Decimal, len(lines))
		total := decimal.Zero
		for i, l := range lines {
			lt, err := domorder.LineTotal(l.quantity, products[l.productID].Price)
			if err != nil {
				return err
			}
			if total, err = domorder.AddToTotal(total, lt); err != nil {
				return err
			}
			lineTotals[i] = lt
		}

		o := &entity.Order{
			ID:          uc.newID(),
			PlatformID:  platformID,
			TotalAmount: decimal.Zero,
			OrderDate:   orderDate,
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}

		now := uc.now()
		reason := domorder.SaleReason(o.ID)
		for i, l := range lines {
			entry, err := inventory.NextEntry(l.productID, latest[l.productID], l.quantity.Neg(), nil, reason, now)
			if err != nil {
				return err
			}
			if err := ledgerRepo.Append(ctx, entry); err != nil {
				return err
			}
			latest[l.productID] = entry

			line := &entity.OrderLine{
				OrderID:      o.ID,
				ProductID:    l.productID,
				AdjustmentID: entry.ID,
				Quantity:     l.quantity,
				UnitPrice:    products[l.productID].Price,
				LineTotal:    lineTotals[i],
			}
			if err := orderRepo.CreateLine(ctx, line); err != nil {
				return err
			}
			o.Lines = append(o.Lines, line)
		}

		if err := orderRepo.UpdateTotal(ctx, o.ID, total); err != nil {
			return err
		}
		o.TotalAmount = total
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder devuelve el pedido con sus líneas.
func (uc *PlaceOrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	id = domain.CanonicalID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id es obligatorio", domain.ErrInvalidInput)
	}
	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Resource: "pedido", IDs: []string{id}}
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

func validateRequest(req dto.PlaceOrderRequest) ([]lineInput, error) {
	if strings.TrimSpace(req.PlatformID) == "" {
		return nil, fmt.Errorf("%w: platform_id es obligatorio", domain.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe tener al menos una línea", domain.ErrInvalidInput)
	}
	lines := make([]lineInput, 0, len(req.Items))
	for i, it := range req.Items {
		pid := domain.CanonicalID(it.ProductID)
		if pid == "" {
			return nil, fmt.Errorf("%w: items[%d].product_id es obligatorio", domain.ErrInvalidInput, i)
		}
		if err := domorder.ValidateQuantity(it.Quantity); err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		lines = append(lines, lineInput{productID: pid, quantity: it.Quantity})
	}
	return lines, nil
}

// aggregate suma las cantidades por producto conservando el orden de primera aparición.
func aggregate(lines []lineInput) ([]string, map[string]decimal.Decimal) {
	ids := make([]string, 0, len(lines))
	requested := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		if _, seen := requested[l.productID]; !seen {
			ids = append(ids, l.productID)
		}
		requested[l.productID] = requested[l.productID].Add(l.quantity)
	}
	return ids, requested
}

// classify deja pasar los errores de dominio y envuelve el resto como ErrPersistence.
func classify(op string, err error) error {
	for _, known := range []error{
		domain.ErrNotFound,
		domain.ErrInvalidInput,
		domain.ErrInsufficientStock,
		domain.ErrConstraintViolation,
		domain.ErrPersistence,
		domain.ErrDuplicate,
		domain.ErrConflict,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return domain.Persistence(op, err)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          o.ID,
		PlatformID:  o.PlatformID,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
		CreatedAt:   o.CreatedAt,
		Lines:       make([]dto.OrderLineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:           l.ID,
			ProductID:    l.ProductID,
			AdjustmentID: l.AdjustmentID,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			LineTotal:    l.LineTotal,
		})
	}
	return resp
}
