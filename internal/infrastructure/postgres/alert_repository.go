package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, type, message, status, origin_id, resolution_comment, resolved_by, created_at, resolved_at`

// Create inserta una alerta.
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO alerts (`+alertColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, string(a.Type), a.Message, string(a.Status), nullIfEmpty(a.OriginID),
		a.ResolutionComment, nullIfEmpty(a.ResolvedBy), a.CreatedAt, a.ResolvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

// GetByID obtiene una alerta; nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// ExistsPending indica si ya hay una alerta pendiente del mismo tipo y origen.
func (r *AlertRepo) ExistsPending(ctx context.Context, t entity.AlertType, originID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM alerts WHERE type = $1 AND origin_id = $2 AND status = 'pendiente')`,
		string(t), originID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists alert: %w", err)
	}
	return exists, nil
}

// Resolve registra la resolución de una alerta pendiente.
func (r *AlertRepo) Resolve(ctx context.Context, a *entity.Alert) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE alerts SET status = $2, resolution_comment = $3, resolved_by = $4, resolved_at = $5
		WHERE id = $1 AND status = 'pendiente'`,
		a.ID, string(a.Status), a.ResolutionComment, nullIfEmpty(a.ResolvedBy), a.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// List alertas creadas en el rango, más recientes primero.
func (r *AlertRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Alert, error) {
	var where []string
	var args []any
	if from != nil {
		args = append(args, *from)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	query := `SELECT ` + alertColumns + ` FROM alerts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var t, status string
	var originID, resolvedBy *string
	err := row.Scan(&a.ID, &t, &a.Message, &status, &originID, &a.ResolutionComment, &resolvedBy, &a.CreatedAt, &a.ResolvedAt)
	if err != nil {
		return nil, err
	}
	a.Type = entity.AlertType(t)
	a.Status = entity.AlertStatus(status)
	a.OriginID = stringOrEmpty(originID)
	a.ResolvedBy = stringOrEmpty(resolvedBy)
	return &a, nil
}
