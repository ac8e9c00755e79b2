package entity

import "time"

// AlertType tipo de alerta.
type AlertType string

const (
	AlertHighValueExit AlertType = "salida_alta"
	AlertStaleOrder    AlertType = "orden_no_actualizada"
	AlertStaleRequest  AlertType = "solicitud_no_actualizada"
	AlertLowStock      AlertType = "stock_bajo"
)

// AlertStatus estado de la alerta.
type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "pendiente"
	AlertStatusResolved AlertStatus = "resuelta"
	AlertStatusRejected AlertStatus = "rechazada"
)

// Alert alerta operativa; OriginID apunta al objeto que la originó (orden, solicitud, producto, movimiento).
type Alert struct {
	ID                string
	Type              AlertType
	Message           string
	Status            AlertStatus
	OriginID          string
	ResolutionComment string
	ResolvedBy        string
	CreatedAt         time.Time
	ResolvedAt        *time.Time
}
