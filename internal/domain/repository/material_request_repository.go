package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// MaterialRequestRepository puerto de persistencia para solicitudes de materiales.
type MaterialRequestRepository interface {
	Create(ctx context.Context, req *entity.MaterialRequest) error
	GetByID(ctx context.Context, id string) (*entity.MaterialRequest, error)
	UpdateStatus(ctx context.Context, req *entity.MaterialRequest) error
	List(ctx context.Context, limit, offset int) ([]*entity.MaterialRequest, error)
	ListPendingOlderThan(ctx context.Context, before time.Time) ([]*entity.MaterialRequest, error)
	LastNumber(ctx context.Context) (int, error)
}
