package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/alerts"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/purchasing"
	"github.com/jhoicas/bodega-api/internal/application/requests"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC       *purchasing.OrderUseCase
	ReceiptUC     *inventory.ReceiptUseCase
	ExitUC        *inventory.ExitUseCase
	MovementUC    *inventory.MovementQueryUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ProductUC     *usecase.ProductUseCase
	RequestUC     *requests.MaterialRequestUseCase
	AlertUC       *alerts.AlertUseCase
	JWTSecret     string
	JWTIssuer     string
	// Idempotency se aplica a POST /receipts y POST /exits; nil = sin idempotencia.
	Idempotency fiber.Handler
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	idem := deps.Idempotency
	if idem == nil {
		idem = func(c *fiber.Ctx) error { return c.Next() }
	}

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/pending", orderHandler.ListPending)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/recompute", orderHandler.Recompute)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	inventoryHandler := NewInventoryHandler(deps.ReceiptUC, deps.ExitUC, deps.MovementUC, deps.Replenishment)
	api.Post("/receipts", idem, inventoryHandler.Receive)
	api.Post("/exits", idem, inventoryHandler.Exit)
	api.Get("/movements", inventoryHandler.ListMovements)
	api.Get("/inventory/replenishment-list", inventoryHandler.GetReplenishmentList)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/lookup", productHandler.Lookup)
	products.Get("/:id", productHandler.GetByID)

	reqs := api.Group("/requests")
	requestHandler := NewRequestHandler(deps.RequestUC)
	reqs.Post("/", requestHandler.Create)
	reqs.Get("/", requestHandler.List)
	reqs.Get("/:id", requestHandler.GetByID)
	deciders := RequireRole(entity.RoleSupervisor, entity.RoleTecnico)
	reqs.Patch("/:id/approve", deciders, requestHandler.Approve)
	reqs.Patch("/:id/reject", deciders, requestHandler.Reject)

	alertGroup := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alertGroup.Get("/", alertHandler.List)
	alertGroup.Post("/scan", alertHandler.Scan)
	alertGroup.Patch("/:id/resolve",
		RequireRole(entity.RoleTecnico, entity.RoleSupervisor, entity.RoleSecretarioTecnico),
		alertHandler.Resolve)
}
