package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
	txTimeout   time.Duration
	log         zerolog.Logger
}

// NewTxRunner construye el runner. lockTimeout acota la espera por filas bloqueadas
// (SET LOCAL lock_timeout); txTimeout acota la transacción completa.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout, txTimeout time.Duration, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout, txTimeout: txTimeout, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La cancelación del cliente no interrumpe la tx: se confirma o se revierte completa.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	ctx = context.WithoutCancel(ctx)
	if r.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.txTimeout)
		defer cancel()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return r.fail("begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return r.fail("lock_timeout", err)
		}
	}

	repos := ports.TxRepos{
		Orders:    NewPurchaseOrderRepository(tx),
		Products:  NewProductRepository(tx),
		Movements: NewMovementRepository(tx),
		Equipment: NewEquipmentRepository(tx),
		Requests:  NewMaterialRequestRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		return r.fail("tx", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return r.fail("commit", err)
	}
	return nil
}

func (r *TxRunner) fail(op string, err error) error {
	out := classify(op, err)
	if out == domain.ErrConcurrencyConflict || !domain.IsDomainError(err) {
		r.log.Warn().Err(err).Str("op", op).Msg("transacción revertida")
	}
	return out
}
