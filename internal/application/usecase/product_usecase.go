package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domorder "github.com/jhoicas/backoffice-api/internal/domain/order"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Longitudes máximas de las columnas de products.
const (
	maxProductName        = 100
	maxProductSKU         = 20
	maxProductDescription = 300
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía ledger de inventario.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un nuevo producto, publicado por defecto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  domain.CanonicalID(in.CategoryID),
		SKU:         strings.TrimSpace(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Published:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Published != nil {
		product.Published = *in.Published
	}
	if err := uc.validate(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, domain.CanonicalID(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El precio nuevo solo afecta pedidos futuros.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, domain.CanonicalID(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.CategoryID != nil {
		product.CategoryID = domain.CanonicalID(*in.CategoryID)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Published != nil {
		product.Published = *in.Published
	}
	if err := uc.validate(ctx, product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por nombre con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, total, len(items)),
	}, nil
}

func (uc *ProductUseCase) validate(ctx context.Context, p *entity.Product) error {
	switch {
	case p.Name == "" || utf8.RuneCountInString(p.Name) > maxProductName:
		return fmt.Errorf("%w: name debe tener entre 1 y %d caracteres", domain.ErrInvalidInput, maxProductName)
	case p.SKU == "" || utf8.RuneCountInString(p.SKU) > maxProductSKU:
		return fmt.Errorf("%w: sku debe tener entre 1 y %d caracteres", domain.ErrInvalidInput, maxProductSKU)
	case utf8.RuneCountInString(p.Description) > maxProductDescription:
		return fmt.Errorf("%w: description máximo %d caracteres", domain.ErrInvalidInput, maxProductDescription)
	case p.CategoryID == "":
		return fmt.Errorf("%w: category_id es obligatorio", domain.ErrInvalidInput)
	}
	if err := domorder.ValidatePrice(p.Price); err != nil {
		return err
	}
	cat, err := uc.categoryRepo.GetByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return &domain.NotFoundError{Resource: "categoría", IDs: []string{p.CategoryID}}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
