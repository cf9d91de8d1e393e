package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.PlatformRepository = (*PlatformRepo)(nil)

// PlatformRepo plataformas de venta sobre PostgreSQL.
type PlatformRepo struct {
	q Querier
}

// NewPlatformRepository construye el adaptador.
func NewPlatformRepository(q Querier) *PlatformRepo {
	return &PlatformRepo{q: q}
}

func (r *PlatformRepo) Create(ctx context.Context, p *entity.Platform) error {
	const query = `INSERT INTO platforms (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.CreatedAt, p.UpdatedAt)
	return mapError("insert platform", err)
}

func (r *PlatformRepo) GetByID(ctx context.Context, id string) (*entity.Platform, error) {
	if !isUUID(id) {
		return nil, nil
	}
	const query = `SELECT id, name, created_at, updated_at FROM platforms WHERE id = $1`
	var p entity.Platform
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get platform", err)
	}
	return &p, nil
}

func (r *PlatformRepo) List(ctx context.Context) ([]*entity.Platform, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM platforms ORDER BY name`)
	if err != nil {
		return nil, mapError("list platforms", err)
	}
	defer rows.Close()
	var list []*entity.Platform
	for rows.Next() {
		var p entity.Platform
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapError("list platforms", err)
		}
		list = append(list, &p)
	}
	return list, mapError("list platforms", rows.Err())
}
