package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/purchasing"
)

// Códigos de advertencia de recepción.
const (
	WarningUnmatched      = "UNMATCHED"
	WarningExcessIgnored  = "EXCESS_IGNORED"
	WarningUnknownProduct = "UNKNOWN_PRODUCT"
)

// ReceiptLine línea física recibida.
type ReceiptLine struct {
	Product     entity.ProductRef
	Quantity    decimal.Decimal
	UnitCost    *decimal.Decimal
	UpdatePrice bool
}

// ReceiptInput recepción de mercadería. OrderID vacío = entrada sin orden de compra.
type ReceiptInput struct {
	OrderID string
	Lines   []ReceiptLine
	Motive  entity.Motive
	Comment string
	UserID  string
}

// ReceiptWarning advertencia no bloqueante sobre una línea recibida.
type ReceiptWarning struct {
	Line    int
	Code    string
	Product string
	Excess  decimal.Decimal
	Message string
}

// ReceiptResult movimientos creados, advertencias y estado final de la orden (si aplica).
type ReceiptResult struct {
	Movements   []*entity.Movement
	Warnings    []ReceiptWarning
	OrderStatus *entity.OrderStatus
}

// ReceiptUseCase concilia recepciones contra órdenes de compra y las lleva al libro de stock.
type ReceiptUseCase struct {
	txRunner ports.TxRunner
	ledger   *StockLedger
	log      zerolog.Logger
	now      func() time.Time
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRunner ports.TxRunner, ledger *StockLedger, log zerolog.Logger) *ReceiptUseCase {
	return &ReceiptUseCase{txRunner: txRunner, ledger: ledger, log: log, now: time.Now}
}

// ReconcileReceipt procesa la recepción completa en una transacción.
// Con orden: bloquea la OC, imputa cada línea a sus líneas coincidentes (código, luego nombre),
// recorta la sobre-entrega al pendiente y recalcula el estado. Las líneas sin coincidencia
// quedan como advertencia y no generan movimiento.
func (uc *ReceiptUseCase) ReconcileReceipt(ctx context.Context, in ReceiptInput) (*ReceiptResult, error) {
	if in.OrderID != "" && in.Motive == "" {
		in.Motive = entity.MotiveOrderReceipt
	}
	if err := validateReceipt(in); err != nil {
		return nil, err
	}

	var res *ReceiptResult
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		if in.OrderID == "" {
			res, err = uc.standalone(ctx, repos, in)
		} else {
			res, err = uc.againstOrder(ctx, repos, in)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		uc.log.Warn().
			Str("order_id", in.OrderID).
			Int("line", w.Line).
			Str("code", w.Code).
			Str("product", w.Product).
			Msg(w.Message)
	}
	return res, nil
}

func (uc *ReceiptUseCase) standalone(ctx context.Context, repos ports.TxRepos, in ReceiptInput) (*ReceiptResult, error) {
	res := &ReceiptResult{Movements: []*entity.Movement{}, Warnings: []ReceiptWarning{}}
	products, err := resolveProducts(ctx, repos, in.Lines)
	if err != nil {
		return nil, err
	}
	if err := lockProducts(ctx, repos, products); err != nil {
		return nil, err
	}
	txID := uuid.New().String()
	for i, line := range in.Lines {
		p := products[i]
		if p == nil {
			res.Warnings = append(res.Warnings, unknownProductWarning(i, line))
			continue
		}
		mov, err := uc.ledger.Apply(ctx, repos, MovementInstruction{
			TransactionID: txID,
			ProductID:     p.ID,
			Quantity:      line.Quantity,
			Motive:        in.Motive,
			UnitCost:      line.UnitCost,
			UpdatePrice:   line.UpdatePrice,
			Comment:       in.Comment,
			CreatedBy:     in.UserID,
		})
		if err != nil {
			return nil, err
		}
		res.Movements = append(res.Movements, mov)
	}
	return res, nil
}

func (uc *ReceiptUseCase) againstOrder(ctx context.Context, repos ports.TxRepos, in ReceiptInput) (*ReceiptResult, error) {
	order, err := repos.Orders.GetForUpdate(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}

	products, err := resolveProducts(ctx, repos, in.Lines)
	if err != nil {
		return nil, err
	}
	if err := lockProducts(ctx, repos, products); err != nil {
		return nil, err
	}

	res := &ReceiptResult{Movements: []*entity.Movement{}, Warnings: []ReceiptWarning{}}
	txID := uuid.New().String()
	for i, line := range in.Lines {
		p := products[i]
		if p == nil {
			res.Warnings = append(res.Warnings, unknownProductWarning(i, line))
			continue
		}
		candidates := purchasing.CandidateLines(order, p)
		if len(candidates) == 0 {
			res.Warnings = append(res.Warnings, ReceiptWarning{
				Line:    i,
				Code:    WarningUnmatched,
				Product: productLabel(p),
				Message: fmt.Sprintf("el producto %s no figura en la orden %s", productLabel(p), order.Number),
			})
			continue
		}

		alloc := purchasing.Allocate(order, candidates, line.Quantity)
		if alloc.Excess.IsPositive() {
			res.Warnings = append(res.Warnings, ReceiptWarning{
				Line:    i,
				Code:    WarningExcessIgnored,
				Product: productLabel(p),
				Excess:  alloc.Excess,
				Message: fmt.Sprintf("exceso de %s ignorado para %s", alloc.Excess.String(), productLabel(p)),
			})
		}
		if !alloc.Accepted.IsPositive() {
			continue
		}
		mov, err := uc.ledger.Apply(ctx, repos, MovementInstruction{
			TransactionID: txID,
			ProductID:     p.ID,
			Quantity:      alloc.Accepted,
			Motive:        in.Motive,
			OrderID:       order.ID,
			UnitCost:      line.UnitCost,
			UpdatePrice:   line.UpdatePrice,
			Comment:       in.Comment,
			CreatedBy:     in.UserID,
		})
		if err != nil {
			return nil, err
		}
		res.Movements = append(res.Movements, mov)
	}

	if _, err := purchasing.RecomputeStatus(order); err != nil {
		return nil, err
	}
	if len(res.Movements) > 0 {
		order.UpdatedAt = uc.now()
		if err := repos.Orders.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	status := order.Status
	res.OrderStatus = &status
	return res, nil
}

// resolveProducts encuentra el producto de cada línea: por ID si viene, si no por código y luego nombre.
// Un ID inexistente es NotFound; un texto libre sin producto queda en nil (advertencia).
func resolveProducts(ctx context.Context, repos ports.TxRepos, lines []ReceiptLine) ([]*entity.Product, error) {
	out := make([]*entity.Product, len(lines))
	for i, line := range lines {
		ref := line.Product
		if ref.IsKnown() {
			p, err := repos.Products.GetByID(ctx, ref.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, domain.ErrNotFound
			}
			out[i] = p
			continue
		}
		for _, text := range []string{ref.Code, ref.Name} {
			if purchasing.NormalizeKey(text) == "" {
				continue
			}
			p, err := repos.Products.FindByCodeOrName(ctx, text)
			if err != nil {
				return nil, err
			}
			if p != nil {
				out[i] = p
				break
			}
		}
	}
	return out, nil
}

// lockProducts toma las filas de producto en orden ascendente de ID.
func lockProducts(ctx context.Context, repos ports.TxRepos, products []*entity.Product) error {
	ids := make([]string, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if p == nil || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		ids = append(ids, p.ID)
	}
	return lockProductIDs(ctx, repos, ids)
}

func lockProductIDs(ctx context.Context, repos ports.TxRepos, ids []string) error {
	sort.Strings(ids)
	for _, id := range ids {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func validateReceipt(in ReceiptInput) error {
	v := &domain.ValidationError{}
	if in.OrderID == "" {
		if in.Motive != entity.MotivePurchase && in.Motive != entity.MotiveReturn {
			v.Add("motive", "debe ser compra o devolucion")
		}
	} else if in.Motive != entity.MotiveOrderReceipt {
		v.Add("motive", "una recepción de orden usa recepcion_oc")
	}
	if len(in.Lines) == 0 {
		v.Add("lines", "la recepción debe tener al menos una línea")
	}
	for i, l := range in.Lines {
		if l.Product.IsEmpty() {
			v.Addf("lines[%d].product", i, "descriptor de producto vacío")
		}
		if !l.Quantity.IsPositive() {
			v.Addf("lines[%d].quantity", i, "debe ser mayor a 0")
		}
		if l.UnitCost != nil && l.UnitCost.IsNegative() {
			v.Addf("lines[%d].unit_cost", i, "no puede ser negativo")
		}
		if l.UpdatePrice && l.UnitCost == nil {
			v.Addf("lines[%d].unit_cost", i, "requerido para actualizar el precio")
		}
	}
	return v.OrNil()
}

func unknownProductWarning(i int, line ReceiptLine) ReceiptWarning {
	return ReceiptWarning{
		Line:    i,
		Code:    WarningUnknownProduct,
		Product: line.Product.Label(),
		Message: fmt.Sprintf("producto %q no existe en bodega", line.Product.Label()),
	}
}

func productLabel(p *entity.Product) string {
	return entity.FreeTextProduct(p.Code, p.Name).Label()
}
