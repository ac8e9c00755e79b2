package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// InventoryHandler recepciones, salidas y libro de movimientos (protegido).
type InventoryHandler struct {
	receipts      *inventory.ReceiptUseCase
	exits         *inventory.ExitUseCase
	movements     *inventory.MovementQueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	receipts *inventory.ReceiptUseCase,
	exits *inventory.ExitUseCase,
	movements *inventory.MovementQueryUseCase,
	replenishment *inventory.ReplenishmentUseCase,
) *InventoryHandler {
	return &InventoryHandler{receipts: receipts, exits: exits, movements: movements, replenishment: replenishment}
}

// Receive godoc
// @Summary      Registrar recepción (con o sin orden de compra)
// @Description  Con order_id concilia las líneas contra la OC; las líneas sin coincidencia
//
//	y la sobre-entrega vuelven como advertencias.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key  header    string              false  "clave de idempotencia"
// @Param        body               body      dto.ReceiptRequest  true   "recepción"
// @Success      201                {object}  dto.ReceiptResponse
// @Failure      400                {object}  dto.ErrorResponse
// @Failure      404                {object}  dto.ErrorResponse
// @Failure      409                {object}  dto.ErrorResponse
// @Router       /api/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := inventory.ReceiptInput{
		Motive:  entity.Motive(strings.TrimSpace(in.Motive)),
		Comment: in.Comment,
		UserID:  GetUserID(c),
		Lines:   make([]inventory.ReceiptLine, 0, len(in.Lines)),
	}
	if in.OrderID != nil {
		input.OrderID = strings.TrimSpace(*in.OrderID)
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.ReceiptLine{
			Product: entity.ProductRef{
				ProductID: strings.TrimSpace(l.ProductID),
				Code:      strings.TrimSpace(l.Code),
				Name:      strings.TrimSpace(l.Name),
			},
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			UpdatePrice: l.UpdatePrice,
		})
	}

	res, err := h.receipts.ReconcileReceipt(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ReceiptResponse{
		Movements: dto.FromMovements(res.Movements),
		Warnings:  make([]dto.ReceiptWarning, 0, len(res.Warnings)),
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, dto.ReceiptWarning{
			Line: w.Line, Code: w.Code, Product: w.Product, Excess: w.Excess, Message: w.Message,
		})
	}
	if res.OrderStatus != nil {
		s := string(*res.OrderStatus)
		out.OrderStatus = &s
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Exit godoc
// @Summary      Registrar salida de bodega
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        X-Idempotency-Key  header    string           false  "clave de idempotencia"
// @Param        body               body      dto.ExitRequest  true   "líneas de salida"
// @Success      201                {object}  dto.ExitResponse
// @Failure      400                {object}  dto.ErrorResponse
// @Failure      404                {object}  dto.ErrorResponse
// @Failure      409                {object}  dto.ErrorResponse
// @Router       /api/exits [post]
func (h *InventoryHandler) Exit(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := inventory.ExitInput{Comment: in.Comment, UserID: GetUserID(c)}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, inventory.ExitLine{
			ProductID:   strings.TrimSpace(l.ProductID),
			Quantity:    l.Quantity,
			Motive:      entity.Motive(strings.TrimSpace(l.Motive)),
			EquipmentID: strings.TrimSpace(l.EquipmentID),
		})
	}
	movements, err := h.exits.RegisterExit(c.UserContext(), input)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExitResponse{Movements: dto.FromMovements(movements)})
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query     string  false  "producto"
// @Param        kind         query     string  false  "entry | exit"
// @Param        from         query     string  false  "fecha desde (YYYY-MM-DD o RFC3339)"
// @Param        to           query     string  false  "fecha hasta (YYYY-MM-DD o RFC3339)"
// @Param        consignment  query     bool    false  "solo productos en consignación"
// @Success      200          {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	v := &domain.ValidationError{}
	from := parseDateQuery(c, "from", false, v)
	to := parseDateQuery(c, "to", true, v)
	if err := v.OrNil(); err != nil {
		return writeError(c, err)
	}
	filter := entity.MovementFilter{
		ProductID:   c.Query("product_id"),
		Kind:        c.Query("kind"),
		From:        from,
		To:          to,
		Consignment: c.QueryBool("consignment", false),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	list, err := h.movements.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items: dto.FromMovements(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos bajo stock mínimo con la cantidad sugerida de compra,
//
//	priorizados por consumo de los últimos 90 días.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": list, "total": len(list)})
}

// parseDateQuery acepta YYYY-MM-DD o RFC3339. Una fecha "hasta" sin hora cubre el día completo.
func parseDateQuery(c *fiber.Ctx, key string, endOfDay bool, v *domain.ValidationError) *time.Time {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		v.Add(key, "fecha inválida, use YYYY-MM-DD o RFC3339")
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
