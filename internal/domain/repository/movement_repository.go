package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// MovementRepository libro de movimientos, solo inserción.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, error)
}
