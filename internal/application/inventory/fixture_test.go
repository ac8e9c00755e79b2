package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

const (
	prodFilter  = "p-01"
	prodGloves  = "p-02"
	prodOil     = "p-03"
	equipmentID = "eq-12"
	testUser    = "u-bodega"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	ledger   *inventory.StockLedger
	receipts *inventory.ReceiptUseCase
	exits    *inventory.ExitUseCase
	notifier *recordingNotifier
}

// recordingNotifier guarda las salidas notificadas.
type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]*entity.Movement
}

func (n *recordingNotifier) ExitRegistered(_ context.Context, movements []*entity.Movement) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, movements)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore(time.Second)
	for _, p := range []*entity.Product{
		{ID: prodFilter, Code: "FLT-001", Name: "Filtro de aceite", PurchasePrice: dec("8500"), Stock: dec("12"), MinStock: dec("5")},
		{ID: prodGloves, Code: "GUA-010", Name: "Guantes de nitrilo", PurchasePrice: dec("1200"), Stock: dec("2"), MinStock: dec("20")},
		{ID: prodOil, Code: "ACE-15W40", Name: "Aceite motor 15W40", PurchasePrice: dec("32000"), Stock: dec("3"), MinStock: dec("4")},
	} {
		store.AddProduct(p)
	}
	store.AddEquipment(&entity.Equipment{ID: equipmentID, Number: "EQ-12", Type: "camion"})

	tx := memory.NewTxRunner(store)
	ledger := inventory.NewStockLedger(tx, zerolog.Nop())
	notifier := &recordingNotifier{}
	return &fixture{
		store:    store,
		ledger:   ledger,
		receipts: inventory.NewReceiptUseCase(tx, ledger, zerolog.Nop()),
		exits:    inventory.NewExitUseCase(tx, ledger, notifier, zerolog.Nop()),
		notifier: notifier,
	}
}

// addOrder guarda una orden pending con una línea por (ref, cantidad).
func (f *fixture) addOrder(t *testing.T, id string, lines ...struct {
	ref entity.ProductRef
	qty string
}) {
	t.Helper()
	o := &entity.PurchaseOrder{
		ID:         id,
		Number:     "101",
		Company:    "Acuícola Sur",
		SupplierID: "sup-1",
		Status:     entity.OrderStatusPending,
		Version:    1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	for i, l := range lines {
		o.Lines = append(o.Lines, entity.OrderLine{
			ID:        id + "-l" + string(rune('1'+i)),
			OrderID:   id,
			Position:  i + 1,
			Product:   l.ref,
			Quantity:  dec(l.qty),
			UnitPrice: dec("1000"),
			Pending:   dec(l.qty),
		})
	}
	require.NoError(t, f.store.Orders().Create(context.Background(), o))
}

func line(ref entity.ProductRef, qty string) struct {
	ref entity.ProductRef
	qty string
} {
	return struct {
		ref entity.ProductRef
		qty string
	}{ref, qty}
}

func (f *fixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) order(t *testing.T, id string) *entity.PurchaseOrder {
	t.Helper()
	o, err := f.store.Orders().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func (f *fixture) movementCount(t *testing.T) int {
	t.Helper()
	list, err := f.store.Movements().List(context.Background(), entity.MovementFilter{})
	require.NoError(t, err)
	return len(list)
}
