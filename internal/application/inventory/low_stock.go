package inventory

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
)

// ListLowStock productos cuya última entrada está en o por debajo de su umbral.
// A diferencia del historial, una página vacía no es error.
func (uc *AdjustmentUseCase) ListLowStock(ctx context.Context, page dto.PageRequest) (*dto.InventoryHistoryResponse, error) {
	page.DefaultPage()
	total, err := uc.ledgerRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.ListLowStock(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AdjustmentResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toAdjustmentResponse(e, products[e.ProductID]))
	}
	return &dto.InventoryHistoryResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, total, len(items)),
	}, nil
}
