package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
)

func TestApplyDelta(t *testing.T) {
	p := &entity.Product{ID: "p-1", Stock: decimal.NewFromInt(2)}

	next, err := inventory.ApplyDelta(p, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, next.Equal(decimal.NewFromInt(5)))

	next, err = inventory.ApplyDelta(p, decimal.NewFromInt(-2))
	require.NoError(t, err)
	assert.True(t, next.IsZero(), "una salida puede dejar el stock exactamente en 0")
}

func TestApplyDelta_StockInsuficiente(t *testing.T) {
	p := &entity.Product{ID: "p-1", Stock: decimal.NewFromInt(2)}

	_, err := inventory.ApplyDelta(p, decimal.NewFromInt(-3))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "p-1", se.ProductID)
	assert.True(t, se.Requested.Equal(decimal.NewFromInt(3)))
	assert.True(t, se.Available.Equal(decimal.NewFromInt(2)))
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(2)), "el producto no se modifica")
}

func TestValidateMotive(t *testing.T) {
	cases := []struct {
		name      string
		qty       int64
		motive    entity.Motive
		equipment string
		fields    []string
	}{
		{"entrada compra", 5, entity.MotivePurchase, "", nil},
		{"salida taller", -1, entity.MotiveWorkshop, "", nil},
		{"salida maquinaria con equipo", -1, entity.MotiveMachinery, "eq-1", nil},
		{"salida maquinaria sin equipo", -1, entity.MotiveMachinery, "", []string{"equipment_id"}},
		{"entrada con motivo de salida", 1, entity.MotiveWorkshop, "", []string{"motive"}},
		{"salida con motivo de entrada", -1, entity.MotivePurchase, "", []string{"motive"}},
		{"cantidad cero", 0, entity.MotivePurchase, "", []string{"quantity"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &domain.ValidationError{}
			inventory.ValidateMotive(v, "", decimal.NewFromInt(tc.qty), tc.motive, tc.equipment)
			var got []string
			for _, f := range v.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tc.fields, got)
		})
	}
}
