package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos (solo inserción).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, transaction_id, product_id, quantity, motive, order_id, equipment_id,
			unit_cost, update_price, stock_after, comment, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.ProductID, m.Quantity, string(m.Motive), nullIfEmpty(m.OrderID), nullIfEmpty(m.EquipmentID),
		m.UnitCost, m.UpdatePrice, m.StockAfter, m.Comment, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List movimientos según filtro, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("m.product_id = $%d", f.ProductID)
	}
	switch f.Kind {
	case "entry":
		where = append(where, "m.quantity > 0")
	case "exit":
		where = append(where, "m.quantity < 0")
	}
	if f.From != nil {
		add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.created_at <= $%d", *f.To)
	}
	if f.Consignment {
		where = append(where, "p.consignment")
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT m.id, m.transaction_id, m.product_id, m.quantity, m.motive, m.order_id, m.equipment_id,
			m.unit_cost, m.update_price, m.stock_after, m.comment, m.created_by, m.created_at
		FROM movements m JOIN products p ON p.id = m.product_id`)
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY m.created_at DESC, m.id")
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var motive string
		var orderID, equipmentID *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.ProductID, &m.Quantity, &motive, &orderID, &equipmentID,
			&m.UnitCost, &m.UpdatePrice, &m.StockAfter, &m.Comment, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Motive = entity.Motive(motive)
		m.OrderID = stringOrEmpty(orderID)
		m.EquipmentID = stringOrEmpty(equipmentID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
