package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// ProductHandler consultas de productos (protegido, solo lectura).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Buscar producto por código o nombre
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q    query     string  true  "código o nombre"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/lookup [get]
func (h *ProductHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "Límite (default 20)"
// @Param        offset  query     int  false  "Offset"
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
