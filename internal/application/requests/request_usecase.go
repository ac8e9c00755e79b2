package requests

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// MaterialRequestUseCase solicitudes de materiales: alta, consulta y aprobación.
type MaterialRequestUseCase struct {
	txRunner    ports.TxRunner
	repo        repository.MaterialRequestRepository
	numberStart int
	log         zerolog.Logger
	now         func() time.Time
}

// NewMaterialRequestUseCase construye el caso de uso.
func NewMaterialRequestUseCase(txRunner ports.TxRunner, repo repository.MaterialRequestRepository, numberStart int, log zerolog.Logger) *MaterialRequestUseCase {
	return &MaterialRequestUseCase{txRunner: txRunner, repo: repo, numberStart: numberStart, log: log, now: time.Now}
}

// Create registra la solicitud en estado pendiente con el siguiente número.
func (uc *MaterialRequestUseCase) Create(ctx context.Context, userID string, in dto.CreateMaterialRequest) (*dto.MaterialRequestResponse, error) {
	v := &domain.ValidationError{}
	if strings.TrimSpace(in.RequesterName) == "" {
		v.Add("requester_name", "es requerido")
	}
	if len(in.Lines) == 0 {
		v.Add("lines", "la solicitud debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if strings.TrimSpace(l.Product) == "" {
			v.Addf("lines[%d].product", i, "es requerido")
		}
		if !l.Quantity.IsPositive() {
			v.Addf("lines[%d].quantity", i, "debe ser mayor a 0")
		}
		if l.WarehouseStock.IsNegative() {
			v.Addf("lines[%d].warehouse_stock", i, "no puede ser negativo")
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now()
	req := &entity.MaterialRequest{
		ID:              uuid.New().String(),
		Folio:           strings.TrimSpace(in.Folio),
		QuotationNumber: strings.TrimSpace(in.QuotationNumber),
		RequesterName:   strings.TrimSpace(in.RequesterName),
		Comment:         in.Comment,
		Status:          entity.RequestStatusPending,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, l := range in.Lines {
		req.Lines = append(req.Lines, entity.MaterialRequestLine{
			ID:             uuid.New().String(),
			Product:        strings.TrimSpace(l.Product),
			Quantity:       l.Quantity,
			Motive:         strings.TrimSpace(l.Motive),
			WarehouseStock: decimal.Max(l.WarehouseStock, decimal.Zero),
		})
	}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		last, err := repos.Requests.LastNumber(ctx)
		if err != nil {
			return err
		}
		next := last + 1
		if next < uc.numberStart {
			next = uc.numberStart
		}
		req.Number = strconv.Itoa(next)
		return repos.Requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("request_id", req.ID).Str("number", req.Number).Msg("solicitud creada")
	return dto.FromMaterialRequest(req), nil
}

// Get devuelve una solicitud por ID.
func (uc *MaterialRequestUseCase) Get(ctx context.Context, id string) (*dto.MaterialRequestResponse, error) {
	req, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromMaterialRequest(req), nil
}

// List solicitudes, más recientes primero.
func (uc *MaterialRequestUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.MaterialRequestResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *dto.FromMaterialRequest(r))
	}
	return out, nil
}

// Approve aprueba una solicitud pendiente.
func (uc *MaterialRequestUseCase) Approve(ctx context.Context, id string, actor entity.Actor) (*dto.MaterialRequestResponse, error) {
	return uc.decide(ctx, id, entity.RequestStatusApproved, actor)
}

// Reject rechaza una solicitud pendiente.
func (uc *MaterialRequestUseCase) Reject(ctx context.Context, id string, actor entity.Actor) (*dto.MaterialRequestResponse, error) {
	return uc.decide(ctx, id, entity.RequestStatusRejected, actor)
}

func (uc *MaterialRequestUseCase) decide(ctx context.Context, id string, status entity.RequestStatus, actor entity.Actor) (*dto.MaterialRequestResponse, error) {
	if actor.Role != entity.RoleSupervisor && actor.Role != entity.RoleTecnico {
		return nil, domain.ErrForbidden
	}
	var req *entity.MaterialRequest
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		req, err = repos.Requests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return domain.ErrInvalidTransition
		}
		req.Status = status
		req.DecidedBy = actor.UserID
		req.UpdatedAt = uc.now()
		return repos.Requests.UpdateStatus(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("request_id", req.ID).Str("status", string(status)).Str("user_id", actor.UserID).Msg("solicitud decidida")
	return dto.FromMaterialRequest(req), nil
}
