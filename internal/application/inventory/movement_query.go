package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// MovementQueryUseCase lectura del libro de movimientos.
type MovementQueryUseCase struct {
	repo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(repo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{repo: repo}
}

// ListMovements filtra por producto, sentido, rango de fechas y consignación.
func (uc *MovementQueryUseCase) ListMovements(ctx context.Context, filter entity.MovementFilter) ([]*entity.Movement, error) {
	v := &domain.ValidationError{}
	if filter.Kind != "" && filter.Kind != "entry" && filter.Kind != "exit" {
		v.Add("kind", "debe ser entry o exit")
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		v.Add("to", "no puede ser anterior a from")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx, filter)
}
