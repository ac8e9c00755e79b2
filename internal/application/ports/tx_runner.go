package ports

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Orders    repository.PurchaseOrderRepository
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Equipment repository.EquipmentRepository
	Requests  repository.MaterialRequestRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
// La transacción no se corta si el cliente cancela; tiene su propio tiempo límite.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
