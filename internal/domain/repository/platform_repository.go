package repository

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// PlatformRepository canales de venta donde se originan los pedidos.
type PlatformRepository interface {
	Create(ctx context.Context, platform *entity.Platform) error
	GetByID(ctx context.Context, id string) (*entity.Platform, error)
	List(ctx context.Context) ([]*entity.Platform, error)
}
