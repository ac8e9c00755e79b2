package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/bodega-api/internal/domain"
)

// Códigos SQLSTATE que indican conflicto de concurrencia (reintentar).
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isConcurrencyError bloqueo no disponible, deadlock, serialización o tiempo de tx agotado.
func isConcurrencyError(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// classify traduce un error de la transacción a la taxonomía de dominio.
// Los errores de dominio pasan tal cual; el resto queda opaco como PersistenceError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConcurrencyError(err) {
		return domain.ErrConcurrencyConflict
	}
	if domain.IsDomainError(err) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
