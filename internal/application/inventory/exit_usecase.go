package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ExitLine línea de salida de bodega.
type ExitLine struct {
	ProductID   string
	Quantity    decimal.Decimal // positiva; el signo lo pone el caso de uso
	Motive      entity.Motive
	EquipmentID string
}

// ExitInput salida de bodega con una o más líneas.
type ExitInput struct {
	Lines   []ExitLine
	Comment string
	UserID  string
}

// ExitNotifier recibe las salidas ya confirmadas.
type ExitNotifier interface {
	ExitRegistered(ctx context.Context, movements []*entity.Movement)
}

// ExitUseCase registra salidas de bodega. Todas las líneas se aplican o ninguna.
type ExitUseCase struct {
	txRunner ports.TxRunner
	ledger   *StockLedger
	notifier ExitNotifier
	log      zerolog.Logger
}

// NewExitUseCase construye el caso de uso. notifier puede ser nil.
func NewExitUseCase(txRunner ports.TxRunner, ledger *StockLedger, notifier ExitNotifier, log zerolog.Logger) *ExitUseCase {
	return &ExitUseCase{txRunner: txRunner, ledger: ledger, notifier: notifier, log: log}
}

// RegisterExit valida todas las líneas, bloquea los productos en orden de ID y descuenta stock.
// Si alguna línea no tiene stock suficiente se revierte la salida completa.
func (uc *ExitUseCase) RegisterExit(ctx context.Context, in ExitInput) ([]*entity.Movement, error) {
	v := &domain.ValidationError{}
	if len(in.Lines) == 0 {
		v.Add("lines", "la salida debe tener al menos una línea")
	}
	instructions := make([]MovementInstruction, len(in.Lines))
	txID := uuid.New().String()
	for i, l := range in.Lines {
		prefix := fmt.Sprintf("lines[%d].", i)
		if l.ProductID == "" {
			v.Add(prefix+"product_id", "es requerido")
		}
		if !l.Quantity.IsPositive() {
			v.Add(prefix+"quantity", "debe ser mayor a 0")
		}
		if !l.Motive.IsExit() {
			v.Add(prefix+"motive", "motivo de salida inválido: "+string(l.Motive))
		}
		if l.Motive.RequiresEquipment() && l.EquipmentID == "" {
			v.Add(prefix+"equipment_id", "requerido para salidas a maquinaria")
		}
		instructions[i] = MovementInstruction{
			TransactionID: txID,
			ProductID:     l.ProductID,
			Quantity:      l.Quantity.Neg(),
			Motive:        l.Motive,
			EquipmentID:   l.EquipmentID,
			Comment:       in.Comment,
			CreatedBy:     in.UserID,
		}
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	var movements []*entity.Movement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		ids := make([]string, 0, len(instructions))
		seen := make(map[string]bool, len(instructions))
		for _, ins := range instructions {
			if !seen[ins.ProductID] {
				seen[ins.ProductID] = true
				ids = append(ids, ins.ProductID)
			}
		}
		if err := lockProductIDs(ctx, repos, ids); err != nil {
			return err
		}
		movements = make([]*entity.Movement, 0, len(instructions))
		for _, ins := range instructions {
			mov, err := uc.ledger.Apply(ctx, repos, ins)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("transaction_id", txID).Int("lines", len(movements)).Msg("salida registrada")
	if uc.notifier != nil {
		uc.notifier.ExitRegistered(ctx, movements)
	}
	return movements, nil
}
