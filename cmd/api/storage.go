package main

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// storage repositorios fuera de transacción más el TxRunner del backend elegido.
type storage struct {
	tx        ports.TxRunner
	products  repository.ProductRepository
	orders    repository.PurchaseOrderRepository
	movements repository.MovementRepository
	suppliers repository.SupplierRepository
	requests  repository.MaterialRequestRepository
	alerts    repository.AlertRepository
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == "memory" {
		s := memory.NewStore(cfg.DB.LockTimeout)
		memory.SeedDemo(s)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			tx:        memory.NewTxRunner(s),
			products:  s.Products(),
			orders:    s.Orders(),
			movements: s.Movements(),
			suppliers: s.Suppliers(),
			requests:  s.Requests(),
			alerts:    s.Alerts(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool, cfg.DB.LockTimeout, cfg.DB.TxTimeout, log.Component("tx")),
		products:  postgres.NewProductRepository(pool),
		orders:    postgres.NewPurchaseOrderRepository(pool),
		movements: postgres.NewMovementRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		requests:  postgres.NewMaterialRequestRepository(pool),
		alerts:    postgres.NewAlertRepository(pool),
		close:     pool.Close,
	}, nil
}
