package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
// Stock y PurchasePrice solo se modifican vía UpdateStock dentro de una transacción.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// FindByCodeOrName busca primero por código y luego por nombre (sin distinguir mayúsculas).
	FindByCodeOrName(ctx context.Context, text string) (*entity.Product, error)
	UpdateStock(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
}
