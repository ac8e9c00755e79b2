package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// Config umbrales de las alertas automáticas.
type Config struct {
	StaleOrderDays   int
	StaleRequestDays int
	HighValueExit    decimal.Decimal // 0 desactiva la alerta de salida alta
}

// AlertUseCase genera, lista y resuelve alertas operativas.
type AlertUseCase struct {
	alerts   repository.AlertRepository
	products repository.ProductRepository
	orders   repository.PurchaseOrderRepository
	requests repository.MaterialRequestRepository
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	alerts repository.AlertRepository,
	products repository.ProductRepository,
	orders repository.PurchaseOrderRepository,
	requests repository.MaterialRequestRepository,
	cfg Config,
	log zerolog.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		alerts:   alerts,
		products: products,
		orders:   orders,
		requests: requests,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Scan revisa stock bajo, órdenes abiertas y solicitudes pendientes sin movimiento.
// No duplica una alerta pendiente del mismo tipo y origen. Devuelve cuántas creó.
func (uc *AlertUseCase) Scan(ctx context.Context) (int, error) {
	now := uc.now()
	created := 0

	low, err := uc.products.ListBelowMinimum(ctx)
	if err != nil {
		return created, err
	}
	for _, p := range low {
		msg := fmt.Sprintf("el producto %s (%s) tiene stock %s, bajo el mínimo %s", p.Name, p.Code, p.Stock.String(), p.MinStock.String())
		ok, err := uc.raise(ctx, entity.AlertLowStock, p.ID, msg)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	orders, err := uc.orders.ListOpenOlderThan(ctx, now.AddDate(0, 0, -uc.cfg.StaleOrderDays))
	if err != nil {
		return created, err
	}
	for _, o := range orders {
		msg := fmt.Sprintf("la orden de compra %s lleva más de %d días sin actualizarse", o.Number, uc.cfg.StaleOrderDays)
		ok, err := uc.raise(ctx, entity.AlertStaleOrder, o.ID, msg)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	reqs, err := uc.requests.ListPendingOlderThan(ctx, now.AddDate(0, 0, -uc.cfg.StaleRequestDays))
	if err != nil {
		return created, err
	}
	for _, r := range reqs {
		msg := fmt.Sprintf("la solicitud %s lleva más de %d días pendiente", r.Number, uc.cfg.StaleRequestDays)
		ok, err := uc.raise(ctx, entity.AlertStaleRequest, r.ID, msg)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}

	if created > 0 {
		uc.log.Info().Int("created", created).Msg("revisión de alertas")
	}
	return created, nil
}

// ExitRegistered crea una alerta de salida alta cuando el valor de la salida supera el umbral.
// Los errores solo se registran: la salida ya está confirmada.
func (uc *AlertUseCase) ExitRegistered(ctx context.Context, movements []*entity.Movement) {
	if !uc.cfg.HighValueExit.IsPositive() || len(movements) == 0 {
		return
	}
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.TotalCost())
	}
	if total.LessThanOrEqual(uc.cfg.HighValueExit) {
		return
	}
	txID := movements[0].TransactionID
	msg := fmt.Sprintf("salida %s por %s supera el umbral %s", txID, total.StringFixed(2), uc.cfg.HighValueExit.StringFixed(2))
	if _, err := uc.raise(ctx, entity.AlertHighValueExit, txID, msg); err != nil {
		uc.log.Error().Err(err).Str("transaction_id", txID).Msg("no se pudo crear alerta de salida alta")
	}
}

// List alertas creadas entre from y to (ambos opcionales).
func (uc *AlertUseCase) List(ctx context.Context, from, to *time.Time) ([]dto.AlertResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.NewValidationError("to", "no puede ser anterior a from")
	}
	list, err := uc.alerts.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.FromAlert(a))
	}
	return out, nil
}

// Resolve cierra una alerta pendiente como resuelta o rechazada.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string, actor entity.Actor, in dto.ResolveAlertRequest) (*dto.AlertResponse, error) {
	switch actor.Role {
	case entity.RoleTecnico, entity.RoleSupervisor, entity.RoleSecretarioTecnico:
	default:
		return nil, domain.ErrForbidden
	}
	status := entity.AlertStatus(in.Status)
	if status != entity.AlertStatusResolved && status != entity.AlertStatusRejected {
		return nil, domain.NewValidationError("status", "debe ser resuelta o rechazada")
	}
	alert, err := uc.alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if alert.Status != entity.AlertStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	now := uc.now()
	alert.Status = status
	alert.ResolutionComment = in.Comment
	alert.ResolvedBy = actor.UserID
	alert.ResolvedAt = &now
	if err := uc.alerts.Resolve(ctx, alert); err != nil {
		return nil, err
	}
	out := dto.FromAlert(alert)
	return &out, nil
}

func (uc *AlertUseCase) raise(ctx context.Context, t entity.AlertType, originID, msg string) (bool, error) {
	exists, err := uc.alerts.ExistsPending(ctx, t, originID)
	if err != nil || exists {
		return false, err
	}
	alert := &entity.Alert{
		ID:        uuid.New().String(),
		Type:      t,
		Message:   msg,
		Status:    entity.AlertStatusPending,
		OriginID:  originID,
		CreatedAt: uc.now(),
	}
	if err := uc.alerts.Create(ctx, alert); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
