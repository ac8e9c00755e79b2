package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

func TestRegisterExit_OK(t *testing.T) {
	f := newFixture(t)
	movs, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		UserID: testUser,
		Lines: []inventory.ExitLine{
			{ProductID: prodFilter, Quantity: dec("2"), Motive: entity.MotiveWorkshop},
			{ProductID: prodOil, Quantity: dec("1"), Motive: entity.MotiveMachinery, EquipmentID: equipmentID},
		},
	})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.True(t, movs[0].Quantity.Equal(dec("-2")))
	assert.Equal(t, movs[0].TransactionID, movs[1].TransactionID)
	assert.Equal(t, equipmentID, movs[1].EquipmentID)
	assert.True(t, f.stock(t, prodFilter).Equal(dec("10")))
	assert.True(t, f.stock(t, prodOil).Equal(dec("2")))

	require.Len(t, f.notifier.calls, 1)
	assert.Len(t, f.notifier.calls[0], 2)
}

func TestRegisterExit_StockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	_, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: prodGloves, Quantity: dec("3"), Motive: entity.MotiveWarehouse}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, prodGloves, se.ProductID)

	assert.True(t, f.stock(t, prodGloves).Equal(dec("2")))
	assert.Equal(t, 0, f.movementCount(t))
	assert.Empty(t, f.notifier.calls)
}

func TestRegisterExit_EsAtomica(t *testing.T) {
	f := newFixture(t)
	_, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{
			{ProductID: prodFilter, Quantity: dec("5"), Motive: entity.MotiveWorkshop},
			{ProductID: prodGloves, Quantity: dec("1"), Motive: entity.MotiveWorkshop},
			{ProductID: prodGloves, Quantity: dec("2"), Motive: entity.MotiveWorkshop},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, f.stock(t, prodFilter).Equal(dec("12")))
	assert.True(t, f.stock(t, prodGloves).Equal(dec("2")))
	assert.Equal(t, 0, f.movementCount(t))
}

func TestRegisterExit_DejaStockEnCero(t *testing.T) {
	f := newFixture(t)
	movs, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: prodGloves, Quantity: dec("2"), Motive: entity.MotiveOther}},
	})
	require.NoError(t, err)
	assert.True(t, movs[0].StockAfter.IsZero())
}

func TestRegisterExit_MaquinariaSinEquipo(t *testing.T) {
	f := newFixture(t)
	_, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: prodFilter, Quantity: dec("1"), Motive: entity.MotiveMachinery}},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "lines[0].equipment_id", ve.Fields[0].Field)
	assert.Equal(t, 0, f.movementCount(t))
}

func TestRegisterExit_EquipoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: prodFilter, Quantity: dec("1"), Motive: entity.MotiveMachinery, EquipmentID: "eq-99"}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterExit_Validacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{
			{ProductID: "", Quantity: dec("-1"), Motive: entity.MotivePurchase},
		},
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 3)

	_, err = f.exits.RegisterExit(context.Background(), inventory.ExitInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterExit_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.exits.RegisterExit(context.Background(), inventory.ExitInput{
		Lines: []inventory.ExitLine{{ProductID: "p-99", Quantity: dec("1"), Motive: entity.MotiveOther}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
