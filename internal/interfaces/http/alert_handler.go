package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/alerts"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
)

// AlertHandler alertas operativas (protegido).
type AlertHandler struct {
	uc *alerts.AlertUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        from  query     string  false  "fecha desde"
// @Param        to    query     string  false  "fecha hasta"
// @Success      200   {array}   dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	v := &domain.ValidationError{}
	from := parseDateQuery(c, "from", false, v)
	to := parseDateQuery(c, "to", true, v)
	if err := v.OrNil(); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Scan ejecuta la revisión de alertas en el momento.
// @Router       /api/alerts/scan [post]
func (h *AlertHandler) Scan(c *fiber.Ctx) error {
	n, err := h.uc.Scan(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AlertScanResponse{Created: n})
}

// Resolve godoc
// @Summary      Resolver o rechazar alerta
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                   true  "ID de la alerta"
// @Param        body  body      dto.ResolveAlertRequest  true  "status y comentario"
// @Success      200   {object}  dto.AlertResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Resolve(c.UserContext(), c.Params("id"), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
