package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra y sus líneas sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, number, company, quotation_number, delivery_location, supplier_id, charge,
	payment_terms, delivery_term, comments, status, created_by, version, created_at, updated_at`

// Create persiste cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	number, err := strconv.Atoi(o.Number)
	if err != nil {
		return fmt.Errorf("número de orden inválido %q: %w", o.Number, err)
	}
	query := `
		INSERT INTO purchase_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(ctx, query,
		o.ID, number, o.Company, o.QuotationNumber, o.DeliveryLocation, o.SupplierID, o.Charge,
		o.PaymentTerms, o.DeliveryTerm, o.Comments, string(o.Status), o.CreatedBy, o.Version, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_lines (id, order_id, position, product_id, code, name, quantity, unit_price, pending)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			l.ID, o.ID, l.Position, nullIfEmpty(l.Product.ProductID), l.Product.Code, l.Product.Name,
			l.Quantity, l.UnitPrice, l.Pending,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden; las líneas se leen bajo ese bloqueo.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.PurchaseOrder{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// Update guarda estado y pendientes si la versión coincide, e incrementa Version.
func (r *PurchaseOrderRepo) Update(ctx context.Context, o *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $2`,
		o.ID, o.Version, string(o.Status), o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}
	for i := range o.Lines {
		l := &o.Lines[i]
		if _, err := r.q.Exec(ctx, `UPDATE purchase_order_lines SET pending = $2 WHERE id = $1`, l.ID, l.Pending); err != nil {
			return fmt.Errorf("update purchase order line: %w", err)
		}
	}
	o.Version++
	return nil
}

// ListByStatus órdenes en los estados dados (todas si no se indica ninguno), más recientes primero.
func (r *PurchaseOrderRepo) ListByStatus(ctx context.Context, statuses ...entity.OrderStatus) ([]*entity.PurchaseOrder, error) {
	if len(statuses) == 0 {
		return r.list(ctx, `SELECT `+orderColumns+` FROM purchase_orders ORDER BY created_at DESC`)
	}
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE status = ANY($1) ORDER BY created_at DESC`, values)
}

// ListOpenOlderThan órdenes abiertas sin modificación desde before.
func (r *PurchaseOrderRepo) ListOpenOlderThan(ctx context.Context, before time.Time) ([]*entity.PurchaseOrder, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM purchase_orders
		WHERE status IN ('pending', 'partially_received') AND updated_at < $1
		ORDER BY updated_at`, before)
}

// LastNumber último correlativo de la empresa. Toma un advisory lock de transacción por empresa
// para que dos altas concurrentes no calculen el mismo número.
func (r *PurchaseOrderRepo) LastNumber(ctx context.Context, company string) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('purchase_orders:' || $1))`, company); err != nil {
		return 0, fmt.Errorf("lock order number: %w", err)
	}
	var last int
	err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(number), 0) FROM purchase_orders WHERE company = $1`, company).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("last order number: %w", err)
	}
	return last, nil
}

func (r *PurchaseOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, position, product_id, code, name, quantity, unit_price, pending
		FROM purchase_order_lines WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.OrderLine
		var productID *string
		if err := rows.Scan(&l.ID, &l.OrderID, &l.Position, &productID, &l.Product.Code, &l.Product.Name,
			&l.Quantity, &l.UnitPrice, &l.Pending); err != nil {
			return fmt.Errorf("scan purchase order line: %w", err)
		}
		l.Product.ProductID = stringOrEmpty(productID)
		o := byID[l.OrderID]
		o.Lines = append(o.Lines, l)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	var number int
	var status string
	err := row.Scan(
		&o.ID, &number, &o.Company, &o.QuotationNumber, &o.DeliveryLocation, &o.SupplierID, &o.Charge,
		&o.PaymentTerms, &o.DeliveryTerm, &o.Comments, &status, &o.CreatedBy, &o.Version, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Number = strconv.Itoa(number)
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
