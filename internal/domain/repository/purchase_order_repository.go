package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la orden; serializa recepciones sobre la misma OC.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// Update guarda estado y pendientes. Usa control optimista sobre Version:
	// si la versión persistida no coincide devuelve domain.ErrConcurrencyConflict.
	Update(ctx context.Context, order *entity.PurchaseOrder) error
	ListByStatus(ctx context.Context, statuses ...entity.OrderStatus) ([]*entity.PurchaseOrder, error)
	ListOpenOlderThan(ctx context.Context, before time.Time) ([]*entity.PurchaseOrder, error)
	// LastNumber último correlativo numérico de la empresa (0 si no hay).
	LastNumber(ctx context.Context, company string) (int, error)
}
