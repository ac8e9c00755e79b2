package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
	ErrPersistence         = errors.New("error de persistencia")
)

// FieldError describe un problema puntual de validación.
// Field usa notación de ruta: "supplier_id", "lines[2].quantity".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError acumula todos los problemas de una entrada; nunca se corta en el primero.
type ValidationError struct {
	Fields []FieldError
}

// Add registra un problema de validación.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Addf registra un problema con campo indexado, ej. Addf("lines[%d].quantity", i, "debe ser > 0").
func (e *ValidationError) Addf(format string, idx int, message string) {
	e.Add(fmt.Sprintf(format, idx), message)
}

// HasErrors indica si hay al menos un problema registrado.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil devuelve el error solo si tiene problemas; permite `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError atajo para un único campo.
func NewValidationError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// InsufficientStockError detalla la salida que dejaría el stock en negativo.
type InsufficientStockError struct {
	ProductID string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s: solicitado %s, disponible %s",
		e.ProductID, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PersistenceError envuelve cualquier fallo transaccional de forma opaca para el llamador.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return ErrPersistence.Error() + ": " + e.Op }

// Unwrap expone ErrPersistence; la causa original solo se registra en logs.
func (e *PersistenceError) Unwrap() error { return ErrPersistence }

// Cause devuelve el error original (para logging).
func (e *PersistenceError) Cause() error { return e.Err }

// IsDomainError indica si err pertenece a la taxonomía de dominio (no debe envolverse como persistencia).
func IsDomainError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized, ErrForbidden,
		ErrInsufficientStock, ErrInvalidTransition, ErrConcurrencyConflict, ErrPersistence,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
