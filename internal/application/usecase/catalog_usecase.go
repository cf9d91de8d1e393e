package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// CatalogUseCase alta y listado de categorías y plataformas de venta.
type CatalogUseCase struct {
	categoryRepo repository.CategoryRepository
	platformRepo repository.PlatformRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categoryRepo repository.CategoryRepository, platformRepo repository.PlatformRepository) *CatalogUseCase {
	return &CatalogUseCase{categoryRepo: categoryRepo, platformRepo: platformRepo}
}

// CreateCategory crea una categoría. SKU vacío toma el nombre en mayúsculas.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: name debe tener entre 1 y 100 caracteres", domain.ErrInvalidInput)
	}
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = strings.ToUpper(name)
	}
	if len(sku) > 20 {
		return nil, fmt.Errorf("%w: sku máximo 20 caracteres", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	c := &entity.Category{ID: uuid.New().String(), Name: name, SKU: sku, CreatedAt: now, UpdatedAt: now}
	if err := uc.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// ListCategories todas las categorías ordenadas por nombre.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// CreatePlatform crea una plataforma de venta.
func (uc *CatalogUseCase) CreatePlatform(ctx context.Context, in dto.CreatePlatformRequest) (*dto.PlatformResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return nil, fmt.Errorf("%w: name debe tener entre 1 y 100 caracteres", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	p := &entity.Platform{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.platformRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPlatformResponse(p), nil
}

// ListPlatforms todas las plataformas ordenadas por nombre.
func (uc *CatalogUseCase) ListPlatforms(ctx context.Context) ([]dto.PlatformResponse, error) {
	list, err := uc.platformRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlatformResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPlatformResponse(p))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, SKU: c.SKU, CreatedAt: c.CreatedAt}
}

func toPlatformResponse(p *entity.Platform) *dto.PlatformResponse {
	return &dto.PlatformResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}
