package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ReplenishmentUseCase arma la lista de reposición a partir de los productos bajo mínimo.
// Prioriza por consumo (salidas de los últimos 90 días) y luego por déficit.
type ReplenishmentUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	now          func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, movementRepo: movementRepo, now: time.Now}
}

// GenerateReplenishmentList sugiere cuánto pedir para dejar cada producto en 1.5 veces su mínimo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.productRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	from := uc.now().AddDate(0, 0, -90)
	exits, err := uc.movementRepo.List(ctx, entity.MovementFilter{Kind: "exit", From: &from})
	if err != nil {
		return nil, err
	}
	consumed := make(map[string]decimal.Decimal, len(items))
	for _, m := range exits {
		consumed[m.ProductID] = consumed[m.ProductID].Add(m.Quantity.Abs())
	}

	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(items))
	for _, p := range items {
		ideal := p.MinStock.Mul(factor)
		qty := ideal.Sub(p.Stock)
		if qty.IsNegative() {
			qty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:             p.ID,
			Code:                  p.Code,
			ProductName:           p.Name,
			CurrentStock:          p.Stock,
			MinStock:              p.MinStock,
			IdealStock:            ideal,
			SuggestedOrderQty:     qty,
			UnitCost:              p.PurchasePrice,
			EstimatedOrderCost:    qty.Mul(p.PurchasePrice),
			UnitsExitedLast90Days: consumed[p.ID],
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.UnitsExitedLast90Days.Equal(b.UnitsExitedLast90Days) {
			return a.UnitsExitedLast90Days.GreaterThan(b.UnitsExitedLast90Days)
		}
		return a.MinStock.Sub(a.CurrentStock).GreaterThan(b.MinStock.Sub(b.CurrentStock))
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
