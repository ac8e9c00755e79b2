package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

func TestApplyMovement_Entrada(t *testing.T) {
	f := newFixture(t)
	mov, err := f.ledger.ApplyMovement(context.Background(), inventory.MovementInstruction{
		ProductID: prodOil,
		Quantity:  dec("2"),
		Motive:    entity.MotiveReturn,
		CreatedBy: testUser,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mov.TransactionID)
	assert.True(t, mov.StockAfter.Equal(dec("5")))
	assert.False(t, mov.UpdatePrice)
	assert.True(t, f.stock(t, prodOil).Equal(dec("5")))
}

func TestApplyMovement_PrecioSoloConCostoExplicito(t *testing.T) {
	f := newFixture(t)
	mov, err := f.ledger.ApplyMovement(context.Background(), inventory.MovementInstruction{
		ProductID:   prodOil,
		Quantity:    dec("1"),
		Motive:      entity.MotivePurchase,
		UpdatePrice: true,
	})
	require.NoError(t, err)
	assert.False(t, mov.UpdatePrice)

	p, err := f.store.Products().GetByID(context.Background(), prodOil)
	require.NoError(t, err)
	assert.True(t, p.PurchasePrice.Equal(dec("32000")))
}

func TestApplyMovement_MotivoNoCorresponde(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ApplyMovement(context.Background(), inventory.MovementInstruction{
		ProductID: prodOil,
		Quantity:  dec("-1"),
		Motive:    entity.MotivePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.movementCount(t))
}

func TestMovementQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.exits.RegisterExit(ctx, inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: prodFilter, Quantity: dec("1"), Motive: entity.MotiveWorkshop}},
	})
	require.NoError(t, err)
	_, err = f.ledger.ApplyMovement(ctx, inventory.MovementInstruction{ProductID: prodFilter, Quantity: dec("4"), Motive: entity.MotivePurchase})
	require.NoError(t, err)

	uc := inventory.NewMovementQueryUseCase(f.store.Movements())

	exits, err := uc.ListMovements(ctx, entity.MovementFilter{ProductID: prodFilter, Kind: "exit"})
	require.NoError(t, err)
	require.Len(t, exits, 1)
	assert.True(t, exits[0].Quantity.IsNegative())

	all, err := uc.ListMovements(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsEntry(), "más recientes primero")

	_, err = uc.ListMovements(ctx, entity.MovementFilter{Kind: "otro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	from := time.Now()
	to := from.Add(-time.Hour)
	_, err = uc.ListMovements(ctx, entity.MovementFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReplenishmentList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.exits.RegisterExit(ctx, inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: prodOil, Quantity: dec("1"), Motive: entity.MotiveWorkshop}},
	})
	require.NoError(t, err)

	uc := inventory.NewReplenishmentUseCase(f.store.Products(), f.store.Movements())
	list, err := uc.GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// El aceite tuvo consumo reciente y va primero aunque su déficit sea menor.
	assert.Equal(t, prodOil, list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].IdealStock.Equal(dec("6")))
	assert.True(t, list[0].SuggestedOrderQty.Equal(dec("4")))
	assert.True(t, list[0].UnitsExitedLast90Days.Equal(dec("1")))

	assert.Equal(t, prodGloves, list[1].ProductID)
	assert.True(t, list[1].SuggestedOrderQty.Equal(dec("28")))
	assert.True(t, list[1].EstimatedOrderCost.Equal(dec("33600")))
}

func TestReplenishmentList_Vacia(t *testing.T) {
	store := memory.NewStore(time.Second)
	uc := inventory.NewReplenishmentUseCase(store.Products(), store.Movements())
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
