package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/inventory"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// AdjustmentUseCase ajustes manuales y consultas del ledger de inventario.
type AdjustmentUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	ledgerRepo  repository.InventoryAdjustmentRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	ledgerRepo repository.InventoryAdjustmentRepository,
	log zerolog.Logger,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AdjustmentUseCase) WithClock(now func() time.Time) *AdjustmentUseCase {
	uc.now = now
	return uc
}

// AdjustInventory agrega una entrada al ledger del producto.
// Bloquea la fila del producto (SELECT FOR UPDATE) mientras lee la última entrada y escribe la nueva,
// así before/sequence siempre continúan la cadena.
func (uc *AdjustmentUseCase) AdjustInventory(ctx context.Context, in dto.AdjustInventoryRequest) (*dto.AdjustmentResponse, error) {
	productID := domain.CanonicalID(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.QuantityChanged.IsZero() && in.Threshold == nil {
		return nil, fmt.Errorf("%w: quantity_changed o threshold deben cambiar algo", domain.ErrInvalidInput)
	}

	var (
		entry   *entity.InventoryAdjustment
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.InventoryAdjustmentRepository,
	) error {
		locked, err := productRepo.LockByIDs(ctx, []string{productID})
		if err != nil {
			return err
		}
		p, ok := locked[productID]
		if !ok {
			return &domain.NotFoundError{Resource: "producto", IDs: []string{productID}}
		}
		prev, err := ledgerRepo.Latest(ctx, productID)
		if err != nil {
			return err
		}
		next, err := inventory.NextEntry(productID, prev, in.QuantityChanged, in.Threshold, in.Reason, uc.now())
		if err != nil {
			return err
		}
		if err := ledgerRepo.Append(ctx, next); err != nil {
			return err
		}
		entry, product = next, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toAdjustmentResponse(entry, product)
	if resp.Alert {
		uc.log.Warn().
			Str("product_id", productID).
			Str("quantity_after", entry.QuantityAfter.String()).
			Str("threshold", entry.Threshold.String()).
			Msg("stock bajo tras ajuste")
	}
	return &resp, nil
}

// GetCurrentInventory última entrada del ledger del producto.
// Un producto sin historial devuelve domain.ErrNoStockRecord, no cero.
func (uc *AdjustmentUseCase) GetCurrentInventory(ctx context.Context, productID string) (*dto.AdjustmentResponse, error) {
	productID = domain.CanonicalID(productID)
	product, err := uc.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	latest, err := uc.ledgerRepo.Latest(ctx, productID)
	if err != nil {
		return nil, err
	}
	if _, _, ok := inventory.CurrentStock(latest); !ok {
		return nil, domain.ErrNoStockRecord
	}
	resp := toAdjustmentResponse(latest, product)
	return &resp, nil
}

// GetHistory historial paginado del producto, más reciente primero.
// Una página sin registros es ErrNotFound.
func (uc *AdjustmentUseCase) GetHistory(ctx context.Context, productID string, page dto.PageRequest) (*dto.InventoryHistoryResponse, error) {
	page.DefaultPage()
	productID = domain.CanonicalID(productID)
	product, err := uc.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total, err := uc.ledgerRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.ListByProduct(ctx, productID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: sin registros de inventario en la página %d", domain.ErrNotFound, page.Page)
	}

	items := make([]dto.AdjustmentResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toAdjustmentResponse(e, product))
	}
	return &dto.InventoryHistoryResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, total, len(items)),
	}, nil
}

func (uc *AdjustmentUseCase) requireProduct(ctx context.Context, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "producto", IDs: []string{productID}}
	}
	return p, nil
}

func toAdjustmentResponse(e *entity.InventoryAdjustment, p *entity.Product) dto.AdjustmentResponse {
	resp := dto.AdjustmentResponse{
		ID:              e.ID,
		ProductID:       e.ProductID,
		Sequence:        e.Sequence,
		QuantityBefore:  e.QuantityBefore,
		QuantityChanged: e.QuantityChanged,
		QuantityAfter:   e.QuantityAfter,
		Threshold:       e.Threshold,
		Reason:          e.Reason,
		CreatedAt:       e.CreatedAt,
		Alert:           inventory.IsLowStock(e),
	}
	if p != nil {
		resp.Product = &dto.ProductSummary{
			ID:         p.ID,
			Name:       p.Name,
			SKU:        p.SKU,
			Price:      p.Price,
			CategoryID: p.CategoryID,
		}
	}
	return resp
}
