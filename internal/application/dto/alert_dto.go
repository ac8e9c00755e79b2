package dto

import "time"

// ResolveAlertRequest body para PATCH /api/alerts/:id/resolve.
type ResolveAlertRequest struct {
	Status  string `json:"status"` // resuelta | rechazada
	Comment string `json:"comment"`
}

// AlertResponse alerta operativa.
type AlertResponse struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Message           string     `json:"message"`
	Status            string     `json:"status"`
	OriginID          string     `json:"origin_id,omitempty"`
	ResolutionComment string     `json:"resolution_comment,omitempty"`
	ResolvedBy        string     `json:"resolved_by,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
}

// AlertScanResponse resultado de una revisión de alertas.
type AlertScanResponse struct {
	Created int `json:"created"`
}
