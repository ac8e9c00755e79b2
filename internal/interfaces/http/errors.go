package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
)

// writeError traduce los errores de dominio a respuestas HTTP.
// Cualquier error fuera de la taxonomía se responde como PERSISTENCE sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  ve.Fields,
		})
	}
	var se *domain.InsufficientStockError
	if errors.As(err, &se) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: se.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	}

	log := loggerFrom(c)
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Cause()).Str("op", pe.Op).Msg("error de persistencia")
	} else {
		log.Error().Err(err).Msg("error no clasificado")
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: domain.ErrPersistence.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
