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

var _ repository.MaterialRequestRepository = (*MaterialRequestRepo)(nil)

// MaterialRequestRepo solicitudes de materiales sobre PostgreSQL.
type MaterialRequestRepo struct {
	q Querier
}

// NewMaterialRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRequestRepository(q Querier) *MaterialRequestRepo {
	return &MaterialRequestRepo{q: q}
}

const requestColumns = `id, number, folio, quotation_number, requester_name, comment, status,
	created_by, decided_by, created_at, updated_at`

// Create persiste la solicitud y sus líneas.
func (r *MaterialRequestRepo) Create(ctx context.Context, req *entity.MaterialRequest) error {
	number, err := strconv.Atoi(req.Number)
	if err != nil {
		return fmt.Errorf("número de solicitud inválido %q: %w", req.Number, err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO material_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID, number, req.Folio, req.QuotationNumber, req.RequesterName, req.Comment, string(req.Status),
		req.CreatedBy, nullIfEmpty(req.DecidedBy), req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("insert material request: %w", err)
	}
	for i, l := range req.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO material_request_lines (id, request_id, position, product, quantity, motive, warehouse_stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, req.ID, i+1, l.Product, l.Quantity, l.Motive, l.WarehouseStock,
		)
		if err != nil {
			return fmt.Errorf("insert material request line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la solicitud con sus líneas; nil si no existe.
func (r *MaterialRequestRepo) GetByID(ctx context.Context, id string) (*entity.MaterialRequest, error) {
	req, err := scanRequest(r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM material_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material request: %w", err)
	}
	if err := r.loadLines(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus registra la decisión. Solo aplica sobre solicitudes aún pendientes.
func (r *MaterialRequestRepo) UpdateStatus(ctx context.Context, req *entity.MaterialRequest) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE material_requests SET status = $2, decided_by = $3, updated_at = $4
		WHERE id = $1 AND status = 'pendiente'`,
		req.ID, string(req.Status), nullIfEmpty(req.DecidedBy), req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// List solicitudes, más recientes primero.
func (r *MaterialRequestRepo) List(ctx context.Context, limit, offset int) ([]*entity.MaterialRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM material_requests ORDER BY number DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListPendingOlderThan solicitudes pendientes sin modificación desde before.
func (r *MaterialRequestRepo) ListPendingOlderThan(ctx context.Context, before time.Time) ([]*entity.MaterialRequest, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM material_requests
		WHERE status = 'pendiente' AND updated_at < $1 ORDER BY updated_at`, before)
}

// LastNumber último número de solicitud (0 si no hay), bajo advisory lock de transacción.
func (r *MaterialRequestRepo) LastNumber(ctx context.Context) (int, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('material_requests'))`); err != nil {
		return 0, fmt.Errorf("lock request number: %w", err)
	}
	var last int
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(MAX(number), 0) FROM material_requests`).Scan(&last); err != nil {
		return 0, fmt.Errorf("last request number: %w", err)
	}
	return last, nil
}

func (r *MaterialRequestRepo) list(ctx context.Context, query string, args ...any) ([]*entity.MaterialRequest, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list material requests: %w", err)
	}
	var list []*entity.MaterialRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan material request: %w", err)
		}
		list = append(list, req)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range list {
		if err := r.loadLines(ctx, req); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *MaterialRequestRepo) loadLines(ctx context.Context, req *entity.MaterialRequest) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, product, quantity, motive, warehouse_stock
		FROM material_request_lines WHERE request_id = $1 ORDER BY position`, req.ID)
	if err != nil {
		return fmt.Errorf("list material request lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MaterialRequestLine
		if err := rows.Scan(&l.ID, &l.Product, &l.Quantity, &l.Motive, &l.WarehouseStock); err != nil {
			return fmt.Errorf("scan material request line: %w", err)
		}
		req.Lines = append(req.Lines, l)
	}
	return rows.Err()
}

func scanRequest(row pgx.Row) (*entity.MaterialRequest, error) {
	var req entity.MaterialRequest
	var number int
	var status string
	var decidedBy *string
	err := row.Scan(&req.ID, &number, &req.Folio, &req.QuotationNumber, &req.RequesterName, &req.Comment, &status,
		&req.CreatedBy, &decidedBy, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	req.Number = strconv.Itoa(number)
	req.Status = entity.RequestStatus(status)
	req.DecidedBy = stringOrEmpty(decidedBy)
	return &req, nil
}
