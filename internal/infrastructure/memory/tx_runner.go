package memory

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner serializa transacciones sobre el Store. Si la espera supera lockTimeout
// devuelve ErrConcurrencyConflict.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	ctx = context.WithoutCancel(ctx)
	var timeout <-chan time.Time
	if r.s.lockTimeout > 0 {
		t := time.NewTimer(r.s.lockTimeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case r.s.txSem <- struct{}{}:
	case <-timeout:
		return domain.ErrConcurrencyConflict
	}
	defer func() { <-r.s.txSem }()

	r.s.mu.RLock()
	tx := r.s.st.txClone()
	r.s.mu.RUnlock()

	b := base{s: r.s, tx: tx}
	repos := ports.TxRepos{
		Orders:    &OrderRepo{b},
		Products:  &ProductRepo{b},
		Movements: &MovementRepo{b},
		Equipment: &EquipmentRepo{b},
		Requests:  &RequestRepo{b},
	}
	if err := fn(ctx, repos); err != nil {
		if domain.IsDomainError(err) {
			return err
		}
		return &domain.PersistenceError{Op: "tx", Err: err}
	}

	r.s.mu.Lock()
	r.s.st.products = tx.products
	r.s.st.orders = tx.orders
	r.s.st.movements = tx.movements
	r.s.st.requests = tx.requests
	r.s.mu.Unlock()
	return nil
}
