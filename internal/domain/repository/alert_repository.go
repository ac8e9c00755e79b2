package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// AlertRepository puerto de persistencia para alertas.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// ExistsPending indica si ya hay una alerta pendiente del mismo tipo y origen.
	ExistsPending(ctx context.Context, alertType entity.AlertType, originID string) (bool, error)
	Resolve(ctx context.Context, alert *entity.Alert) error
	List(ctx context.Context, from, to *time.Time) ([]*entity.Alert, error)
}
