package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/purchasing"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// OrderHandler órdenes de compra (protegido).
type OrderHandler struct {
	uc *purchasing.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "cabecera y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query     string  false  "estados separados por coma"
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var statuses []entity.OrderStatus
	for _, s := range strings.Split(c.Query("status"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			statuses = append(statuses, entity.OrderStatus(s))
		}
	}
	out, err := h.uc.ListOrders(c.UserContext(), statuses...)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPending órdenes pendientes o parcialmente recibidas.
// @Router       /api/orders/pending [get]
func (h *OrderHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPendingOrders(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de orden con pendientes por línea
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recompute recalcula el estado de la orden.
// @Router       /api/orders/{id}/recompute [post]
func (h *OrderHandler) Recompute(c *fiber.Ctx) error {
	status, err := h.uc.RecomputeStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "status": status})
}

// Cancel godoc
// @Summary      Cancelar orden abierta
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.CancelOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
