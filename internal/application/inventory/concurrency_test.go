package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

func TestReconcileReceipt_ConcurrentesNoSobreDescuentanPendiente(t *testing.T) {
	f := newFixture(t)
	f.addOrder(t, "oc-20", line(entity.KnownProduct(prodFilter), "10"))
	ctx := context.Background()

	const workers = 20
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.receipts.ReconcileReceipt(ctx, receiveAgainst("oc-20",
				inventory.ReceiptLine{Product: entity.KnownProduct(prodFilter), Quantity: dec("1")}))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	o := f.order(t, "oc-20")
	assert.True(t, o.Lines[0].Pending.IsZero())
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
	assert.Equal(t, 10, f.movementCount(t), "solo se aceptan las unidades pendientes")
	assert.True(t, f.stock(t, prodFilter).Equal(dec("22")))
}

func TestRegisterExit_ConcurrentesNuncaDejanStockNegativo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 20
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.exits.RegisterExit(ctx, inventory.ExitInput{
				Lines:  []inventory.ExitLine{{ProductID: prodFilter, Quantity: dec("1"), Motive: entity.MotiveWorkshop}},
				UserID: testUser,
			})
		}(i)
	}
	wg.Wait()

	ok, rejected := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 12, ok)
	assert.Equal(t, 8, rejected)
	assert.True(t, f.stock(t, prodFilter).IsZero())
	assert.Equal(t, ok, f.movementCount(t))
	assert.Len(t, f.notifier.calls, ok)
}
