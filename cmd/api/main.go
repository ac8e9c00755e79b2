package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/idempotency"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bodega-api/internal/application/alerts"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/purchasing"
	"github.com/jhoicas/bodega-api/internal/application/requests"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	infraredis "github.com/jhoicas/bodega-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/bodega-api/internal/interfaces/http"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer st.close()

	highValue, err := decimal.NewFromString(cfg.Alerts.HighValueExit)
	if err != nil {
		log.Fatal().Err(err).Str("ALERTS_HIGH_VALUE_EXIT", cfg.Alerts.HighValueExit).Msg("umbral de salida alta inválido")
	}

	alertUC := alerts.NewAlertUseCase(st.alerts, st.products, st.orders, st.requests, alerts.Config{
		StaleOrderDays:   cfg.Alerts.StaleOrderDays,
		StaleRequestDays: cfg.Alerts.StaleRequestDays,
		HighValueExit:    highValue,
	}, log.Component("alerts"))
	ledger := inventory.NewStockLedger(st.tx, log.Component("ledger"))
	deps := httpRouter.RouterDeps{
		OrderUC:       purchasing.NewOrderUseCase(st.tx, st.orders, st.suppliers, cfg.Numbering.OrderStart, log.Component("orders")),
		ReceiptUC:     inventory.NewReceiptUseCase(st.tx, ledger, log.Component("receipts")),
		ExitUC:        inventory.NewExitUseCase(st.tx, ledger, alertUC, log.Component("exits")),
		MovementUC:    inventory.NewMovementQueryUseCase(st.movements),
		Replenishment: inventory.NewReplenishmentUseCase(st.products, st.movements),
		ProductUC:     usecase.NewProductUseCase(st.products),
		RequestUC:     requests.NewMaterialRequestUseCase(st.tx, st.requests, cfg.Numbering.RequestStart, log.Component("requests")),
		AlertUC:       alertUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
	}

	idemCfg := idempotency.Config{
		Lifetime:  cfg.Idempotency.TTL,
		KeyHeader: "X-Idempotency-Key",
	}
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		storage := infraredis.NewStorage(rdb, cfg.App.Name+":idem:")
		defer storage.Close()
		idemCfg.Storage = storage
	}
	deps.Idempotency = idempotency.New(idemCfg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 20,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Idempotency-Key",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Bodega API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, deps)

	scanner := alerts.NewScanner(alertUC, cfg.Alerts.ScanInterval, log.Component("alerts"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		return scanner.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor finalizado con error")
	}
	log.Info().Msg("aplicación detenida")
}
