package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
)

// MovementInstruction instrucción de cambio de stock para un producto.
// Quantity > 0 es una entrada, Quantity < 0 una salida.
type MovementInstruction struct {
	TransactionID string
	ProductID     string
	Quantity      decimal.Decimal
	Motive        entity.Motive
	OrderID       string
	EquipmentID   string
	UnitCost      *decimal.Decimal // nil = precio de compra del producto
	UpdatePrice   bool
	Comment       string
	CreatedBy     string
}

// StockLedger único punto que modifica el stock de un producto.
// Cada cambio deja un movimiento en el libro dentro de la misma transacción.
type StockLedger struct {
	txRunner ports.TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewStockLedger construye el libro de stock.
func NewStockLedger(txRunner ports.TxRunner, log zerolog.Logger) *StockLedger {
	return &StockLedger{txRunner: txRunner, log: log, now: time.Now}
}

// ApplyMovement aplica una instrucción en su propia transacción.
func (l *StockLedger) ApplyMovement(ctx context.Context, in MovementInstruction) (*entity.Movement, error) {
	if err := validateInstruction(in, ""); err != nil {
		return nil, err
	}
	if in.TransactionID == "" {
		in.TransactionID = uuid.New().String()
	}
	var mov *entity.Movement
	err := l.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		mov, err = l.Apply(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Apply ejecuta la instrucción con los repositorios de una transacción abierta por el llamador.
// Bloquea la fila del producto; si la salida deja stock negativo no escribe nada.
func (l *StockLedger) Apply(ctx context.Context, repos ports.TxRepos, in MovementInstruction) (*entity.Movement, error) {
	if err := validateInstruction(in, ""); err != nil {
		return nil, err
	}
	if in.Motive.RequiresEquipment() {
		eq, err := repos.Equipment.GetByID(ctx, in.EquipmentID)
		if err != nil {
			return nil, err
		}
		if eq == nil {
			return nil, domain.ErrNotFound
		}
	}

	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	next, err := inventory.ApplyDelta(product, in.Quantity)
	if err != nil {
		return nil, err
	}

	unitCost := product.PurchasePrice
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}
	now := l.now()
	product.Stock = next
	updatePrice := in.UpdatePrice && in.Quantity.IsPositive() && in.UnitCost != nil
	if updatePrice {
		product.PurchasePrice = unitCost
	}
	product.UpdatedAt = now
	if err := repos.Products.UpdateStock(ctx, product); err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:            uuid.New().String(),
		TransactionID: in.TransactionID,
		ProductID:     product.ID,
		Quantity:      in.Quantity,
		Motive:        in.Motive,
		OrderID:       in.OrderID,
		EquipmentID:   in.EquipmentID,
		UnitCost:      unitCost,
		UpdatePrice:   updatePrice,
		StockAfter:    next,
		Comment:       in.Comment,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	l.log.Debug().
		Str("product_id", product.ID).
		Str("motive", string(in.Motive)).
		Str("quantity", in.Quantity.String()).
		Str("stock_after", next.String()).
		Msg("movimiento aplicado")
	return mov, nil
}

func validateInstruction(in MovementInstruction, prefix string) error {
	v := &domain.ValidationError{}
	if in.ProductID == "" {
		v.Add(prefix+"product_id", "es requerido")
	}
	inventory.ValidateMotive(v, prefix, in.Quantity, in.Motive, in.EquipmentID)
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		v.Add(prefix+"unit_cost", "no puede ser negativo")
	}
	return v.OrNil()
}
