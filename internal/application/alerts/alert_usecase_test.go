package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/alerts"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

func newAlertUseCase(t *testing.T) (*alerts.AlertUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore(time.Second)
	store.AddProduct(&entity.Product{ID: "p-1", Code: "GUA-010", Name: "Guantes", Stock: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(20)})
	store.AddProduct(&entity.Product{ID: "p-2", Code: "FLT-001", Name: "Filtro", Stock: decimal.NewFromInt(9), MinStock: decimal.NewFromInt(5)})
	uc := alerts.NewAlertUseCase(store.Alerts(), store.Products(), store.Orders(), store.Requests(), alerts.Config{
		StaleOrderDays:   10,
		StaleRequestDays: 5,
		HighValueExit:    decimal.NewFromInt(100000),
	}, zerolog.Nop())
	return uc, store
}

func TestScan_CreaYNoDuplica(t *testing.T) {
	uc, store := newAlertUseCase(t)
	ctx := context.Background()

	old := time.Now().AddDate(0, 0, -30)
	require.NoError(t, store.Orders().Create(ctx, &entity.PurchaseOrder{
		ID: "oc-1", Number: "101", Company: "A", Status: entity.OrderStatusPending, Version: 1, CreatedAt: old, UpdatedAt: old,
	}))
	require.NoError(t, store.Orders().Create(ctx, &entity.PurchaseOrder{
		ID: "oc-2", Number: "102", Company: "A", Status: entity.OrderStatusReceived, Version: 1, CreatedAt: old, UpdatedAt: old,
	}))
	require.NoError(t, store.Requests().Create(ctx, &entity.MaterialRequest{
		ID: "r-1", Number: "3400", Status: entity.RequestStatusPending, CreatedAt: old, UpdatedAt: old,
	}))

	created, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, created, "stock bajo, orden abierta antigua y solicitud pendiente antigua")

	created, err = uc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	list, err := uc.List(ctx, nil, nil)
	require.NoError(t, err)
	types := make([]string, 0, len(list))
	for _, a := range list {
		types = append(types, a.Type)
	}
	assert.ElementsMatch(t, []string{
		string(entity.AlertLowStock), string(entity.AlertStaleOrder), string(entity.AlertStaleRequest),
	}, types)
}

func TestExitRegistered_SalidaAlta(t *testing.T) {
	uc, _ := newAlertUseCase(t)
	ctx := context.Background()

	small := []*entity.Movement{{TransactionID: "tx-1", Quantity: decimal.NewFromInt(-1), UnitCost: decimal.NewFromInt(5000)}}
	uc.ExitRegistered(ctx, small)
	list, err := uc.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	big := []*entity.Movement{
		{TransactionID: "tx-2", Quantity: decimal.NewFromInt(-3), UnitCost: decimal.NewFromInt(32000)},
		{TransactionID: "tx-2", Quantity: decimal.NewFromInt(-1), UnitCost: decimal.NewFromInt(8500)},
	}
	uc.ExitRegistered(ctx, big)
	uc.ExitRegistered(ctx, big)
	list, err = uc.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, string(entity.AlertHighValueExit), list[0].Type)
	assert.Equal(t, "tx-2", list[0].OriginID)
}

func TestResolve(t *testing.T) {
	uc, _ := newAlertUseCase(t)
	ctx := context.Background()
	_, err := uc.Scan(ctx)
	require.NoError(t, err)
	list, err := uc.List(ctx, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	id := list[0].ID

	_, err = uc.Resolve(ctx, id, entity.Actor{UserID: "u-1", Role: entity.RoleBodeguero}, dto.ResolveAlertRequest{Status: "resuelta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Resolve(ctx, id, entity.Actor{UserID: "u-1", Role: entity.RoleSupervisor}, dto.ResolveAlertRequest{Status: "pendiente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Resolve(ctx, id, entity.Actor{UserID: "u-1", Role: entity.RoleSupervisor}, dto.ResolveAlertRequest{Status: "resuelta", Comment: "repuesto pedido"})
	require.NoError(t, err)
	assert.Equal(t, "resuelta", out.Status)
	assert.Equal(t, "u-1", out.ResolvedBy)
	require.NotNil(t, out.ResolvedAt)

	_, err = uc.Resolve(ctx, id, entity.Actor{UserID: "u-1", Role: entity.RoleTecnico}, dto.ResolveAlertRequest{Status: "rechazada"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Resolve(ctx, "no-existe", entity.Actor{Role: entity.RoleTecnico}, dto.ResolveAlertRequest{Status: "rechazada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Resuelta la alerta, una nueva revisión puede volver a levantarla.
	created, err := uc.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestList_RangoInvalido(t *testing.T) {
	uc, _ := newAlertUseCase(t)
	from := time.Now()
	to := from.Add(-time.Hour)
	_, err := uc.List(context.Background(), &from, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScanner_RevisaAlArrancar(t *testing.T) {
	uc, store := newAlertUseCase(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- alerts.NewScanner(uc, time.Hour, zerolog.Nop()).Run(ctx) }()

	assert.Eventually(t, func() bool {
		list, err := store.Alerts().List(context.Background(), nil, nil)
		return err == nil && len(list) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("el scanner no terminó al cancelar el contexto")
	}
}
