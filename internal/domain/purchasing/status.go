package purchasing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// DeriveStatus calcula el estado de la orden a partir de las cantidades pendientes de sus líneas.
// Nada recibido => pending; todo recibido => received; en otro caso partially_received.
// Una orden cancelada conserva su estado.
func DeriveStatus(order *entity.PurchaseOrder) entity.OrderStatus {
	if order.Status == entity.OrderStatusCancelled {
		return entity.OrderStatusCancelled
	}
	if len(order.Lines) == 0 {
		return entity.OrderStatusPending
	}
	allPending, allReceived := true, true
	for i := range order.Lines {
		l := &order.Lines[i]
		if !l.Pending.Equal(l.Quantity) {
			allPending = false
		}
		if l.Pending.GreaterThan(decimal.Zero) {
			allReceived = false
		}
	}
	switch {
	case allReceived:
		return entity.OrderStatusReceived
	case allPending:
		return entity.OrderStatusPending
	default:
		return entity.OrderStatusPartiallyReceived
	}
}

// CanTransition valida una transición de la máquina de estados de la OC.
func CanTransition(from, to entity.OrderStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case entity.OrderStatusPending:
		return to == entity.OrderStatusPartiallyReceived || to == entity.OrderStatusReceived || to == entity.OrderStatusCancelled
	case entity.OrderStatusPartiallyReceived:
		return to == entity.OrderStatusReceived || to == entity.OrderStatusCancelled
	}
	return false
}

// RecomputeStatus aplica DeriveStatus y devuelve si el estado cambió.
func RecomputeStatus(order *entity.PurchaseOrder) (bool, error) {
	next := DeriveStatus(order)
	if next == order.Status {
		return false, nil
	}
	if !CanTransition(order.Status, next) {
		return false, domain.ErrInvalidTransition
	}
	order.Status = next
	return true, nil
}

// Cancel lleva la orden a cancelled si aún está abierta.
func Cancel(order *entity.PurchaseOrder) error {
	if !CanTransition(order.Status, entity.OrderStatusCancelled) || order.Status == entity.OrderStatusCancelled {
		return domain.ErrInvalidTransition
	}
	order.Status = entity.OrderStatusCancelled
	return nil
}
