package purchasing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/purchasing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// orderWith arma una orden con líneas (cantidad, pendiente).
func orderWith(status entity.OrderStatus, lines ...[2]string) *entity.PurchaseOrder {
	o := &entity.PurchaseOrder{ID: "oc-1", Number: "101", Status: status}
	for i, l := range lines {
		o.Lines = append(o.Lines, entity.OrderLine{
			ID:        "l" + string(rune('1'+i)),
			Product:   entity.FreeTextProduct("", "item"),
			Quantity:  dec(l[0]),
			UnitPrice: dec("1"),
			Pending:   dec(l[1]),
		})
	}
	return o
}

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name  string
		order *entity.PurchaseOrder
		want  entity.OrderStatus
	}{
		{"nada recibido", orderWith(entity.OrderStatusPending, [2]string{"10", "10"}, [2]string{"5", "5"}), entity.OrderStatusPending},
		{"una línea parcial", orderWith(entity.OrderStatusPending, [2]string{"10", "4"}, [2]string{"5", "5"}), entity.OrderStatusPartiallyReceived},
		{"una línea completa, otra pendiente", orderWith(entity.OrderStatusPending, [2]string{"10", "0"}, [2]string{"5", "5"}), entity.OrderStatusPartiallyReceived},
		{"todo recibido", orderWith(entity.OrderStatusPartiallyReceived, [2]string{"10", "0"}, [2]string{"5", "0"}), entity.OrderStatusReceived},
		{"cancelada se conserva", orderWith(entity.OrderStatusCancelled, [2]string{"10", "0"}), entity.OrderStatusCancelled},
		{"sin líneas", orderWith(entity.OrderStatusPending), entity.OrderStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, purchasing.DeriveStatus(tc.order))
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, purchasing.CanTransition(entity.OrderStatusPending, entity.OrderStatusPartiallyReceived))
	assert.True(t, purchasing.CanTransition(entity.OrderStatusPending, entity.OrderStatusReceived))
	assert.True(t, purchasing.CanTransition(entity.OrderStatusPartiallyReceived, entity.OrderStatusReceived))
	assert.True(t, purchasing.CanTransition(entity.OrderStatusPartiallyReceived, entity.OrderStatusCancelled))
	assert.True(t, purchasing.CanTransition(entity.OrderStatusReceived, entity.OrderStatusReceived))

	assert.False(t, purchasing.CanTransition(entity.OrderStatusPartiallyReceived, entity.OrderStatusPending))
	assert.False(t, purchasing.CanTransition(entity.OrderStatusReceived, entity.OrderStatusPartiallyReceived))
	assert.False(t, purchasing.CanTransition(entity.OrderStatusReceived, entity.OrderStatusCancelled))
	assert.False(t, purchasing.CanTransition(entity.OrderStatusCancelled, entity.OrderStatusPending))
}

func TestRecomputeStatus_EsIdempotente(t *testing.T) {
	o := orderWith(entity.OrderStatusPending, [2]string{"10", "4"})

	changed, err := purchasing.RecomputeStatus(o)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, o.Status)

	changed, err = purchasing.RecomputeStatus(o)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, o.Status)
}

func TestRecomputeStatus_NoRetrocede(t *testing.T) {
	// Pendientes restaurados a mano no pueden devolver la orden a pending.
	o := orderWith(entity.OrderStatusPartiallyReceived, [2]string{"10", "10"})
	_, err := purchasing.RecomputeStatus(o)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, o.Status)
}

func TestCancel(t *testing.T) {
	o := orderWith(entity.OrderStatusPartiallyReceived, [2]string{"10", "4"})
	require.NoError(t, purchasing.Cancel(o))
	assert.Equal(t, entity.OrderStatusCancelled, o.Status)

	assert.ErrorIs(t, purchasing.Cancel(o), domain.ErrInvalidTransition)
	assert.ErrorIs(t, purchasing.Cancel(orderWith(entity.OrderStatusReceived, [2]string{"1", "0"})), domain.ErrInvalidTransition)
}
