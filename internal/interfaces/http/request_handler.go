package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/requests"
)

// RequestHandler solicitudes de materiales (protegido).
type RequestHandler struct {
	uc *requests.MaterialRequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *requests.MaterialRequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de materiales
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateMaterialRequest  true  "solicitud"
// @Success      201   {object}  dto.MaterialRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List solicitudes paginadas.
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// GetByID detalle de una solicitud.
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve aprueba una solicitud pendiente (supervisor, tecnico).
// @Router       /api/requests/{id}/approve [patch]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), c.Params("id"), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject rechaza una solicitud pendiente (supervisor, tecnico).
// @Router       /api/requests/{id}/reject [patch]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), c.Params("id"), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
