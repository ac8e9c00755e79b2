package purchasing

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/purchasing"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// OrderUseCase administra el agregado orden de compra (cabecera + líneas).
type OrderUseCase struct {
	txRunner    ports.TxRunner
	orders      repository.PurchaseOrderRepository
	suppliers   repository.SupplierRepository
	numberStart int
	log         zerolog.Logger
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso. numberStart es el primer correlativo de cada empresa.
func NewOrderUseCase(
	txRunner ports.TxRunner,
	orders repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	numberStart int,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:    txRunner,
		orders:      orders,
		suppliers:   suppliers,
		numberStart: numberStart,
		log:         log,
		now:         time.Now,
	}
}

// CreateOrder valida cabecera y líneas, y persiste la orden en pending con pendiente = cantidad.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	now := uc.now()
	order := &entity.PurchaseOrder{
		ID:               uuid.New().String(),
		Company:          strings.TrimSpace(in.Company),
		QuotationNumber:  strings.TrimSpace(in.QuotationNumber),
		DeliveryLocation: strings.TrimSpace(in.DeliveryLocation),
		SupplierID:       strings.TrimSpace(in.SupplierID),
		Charge:           strings.TrimSpace(in.Charge),
		PaymentTerms:     strings.TrimSpace(in.PaymentTerms),
		DeliveryTerm:     strings.TrimSpace(in.DeliveryTerm),
		Comments:         in.Comments,
		Status:           entity.OrderStatusPending,
		CreatedBy:        userID,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
		Lines:            make([]entity.OrderLine, 0, len(in.Lines)),
	}
	for i, l := range in.Lines {
		order.Lines = append(order.Lines, entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Position:  i + 1,
			Product:   toProductRef(l.ProductRefDTO),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Pending:   l.Quantity,
		})
	}
	if err := purchasing.ValidateOrder(order); err != nil {
		return nil, err
	}

	supplier, err := uc.suppliers.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		for i := range order.Lines {
			ref := &order.Lines[i].Product
			if !ref.IsKnown() {
				continue
			}
			p, err := repos.Products.GetByID(ctx, ref.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			if ref.Code == "" {
				ref.Code = p.Code
			}
			if ref.Name == "" {
				ref.Name = p.Name
			}
		}
		last, err := repos.Orders.LastNumber(ctx, order.Company)
		if err != nil {
			return err
		}
		next := last + 1
		if next < uc.numberStart {
			next = uc.numberStart
		}
		order.Number = strconv.Itoa(next)
		return repos.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("number", order.Number).Str("company", order.Company).Msg("orden creada")
	return dto.FromOrder(order), nil
}

// GetOrder devuelve la orden con sus líneas y pendientes.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromOrder(order), nil
}

// ListPendingOrders órdenes en pending o partially_received.
func (uc *OrderUseCase) ListPendingOrders(ctx context.Context) (*dto.OrderListResponse, error) {
	return uc.ListOrders(ctx, entity.OrderStatusPending, entity.OrderStatusPartiallyReceived)
}

// ListOrders órdenes en los estados indicados (todas si no se indica ninguno).
func (uc *OrderUseCase) ListOrders(ctx context.Context, statuses ...entity.OrderStatus) (*dto.OrderListResponse, error) {
	v := &domain.ValidationError{}
	for _, s := range statuses {
		if !s.IsValid() {
			v.Add("status", "estado desconocido: "+string(s))
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	orders, err := uc.orders.ListByStatus(ctx, statuses...)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		out.Items = append(out.Items, *dto.FromOrder(o))
	}
	out.Total = len(out.Items)
	return out, nil
}

// RecomputeStatus recalcula el estado a partir de los pendientes. Es idempotente.
func (uc *OrderUseCase) RecomputeStatus(ctx context.Context, id string) (entity.OrderStatus, error) {
	var status entity.OrderStatus
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		changed, err := purchasing.RecomputeStatus(order)
		if err != nil {
			return err
		}
		status = order.Status
		if !changed {
			return nil
		}
		order.UpdatedAt = uc.now()
		return repos.Orders.Update(ctx, order)
	})
	return status, err
}

// CancelOrder cierra una orden abierta sin recepción completa.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	var order *entity.PurchaseOrder
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		order, err = repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := purchasing.Cancel(order); err != nil {
			return err
		}
		order.UpdatedAt = uc.now()
		return repos.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Msg("orden cancelada")
	return dto.FromOrder(order), nil
}

func toProductRef(in dto.ProductRefDTO) entity.ProductRef {
	if strings.TrimSpace(in.ProductID) != "" {
		ref := entity.KnownProduct(strings.TrimSpace(in.ProductID))
		ref.Code, ref.Name = strings.TrimSpace(in.Code), strings.TrimSpace(in.Name)
		return ref
	}
	return entity.FreeTextProduct(strings.TrimSpace(in.Code), strings.TrimSpace(in.Name))
}
