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
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-ledger/internal/application/auth"
	"github.com/jhoicas/autoparts-ledger/internal/application/credit"
	"github.com/jhoicas/autoparts-ledger/internal/application/sales"
	"github.com/jhoicas/autoparts-ledger/internal/application/usecase"
	"github.com/jhoicas/autoparts-ledger/internal/bootstrap"
	"github.com/jhoicas/autoparts-ledger/internal/domain"
	infrapdf "github.com/jhoicas/autoparts-ledger/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/autoparts-ledger/internal/interfaces/http"
	"github.com/jhoicas/autoparts-ledger/pkg/config"
	"github.com/jhoicas/autoparts-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// montos como número JSON (el cliente los trata como moneda de 2 decimales)
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	store, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()
	gw := store.Gateway

	if store.Online && cfg.App.SyncOnStartup {
		syncCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		report, err := gw.Sync(syncCtx)
		cancel()
		switch {
		case errors.Is(err, domain.ErrBusy):
			log.Info().Msg("otra instancia está sincronizando; se omite")
		case err != nil:
			log.Warn().Err(err).Msg("sincronización inicial")
		default:
			log.Info().Int("failed", report.Failed()).Msg("sincronización inicial completa")
		}
	}

	productUC := usecase.NewProductUseCase(gw.Products)
	saleUC := sales.NewRecordSaleUseCase(gw.Products, gw.Sales, gw, log)
	ledgerUC := credit.NewLedgerUseCase(gw.Sales, gw.Credits, gw.Payments,
		infrapdf.NewMarotoStatementGenerator(), cfg.App.Name, log)
	creditUC := credit.NewCreditUseCase(gw.Credits, log)
	paymentUC := credit.NewPaymentUseCase(gw.Payments, ledgerUC, log)
	sessionUC := auth.NewSessionUseCase(cfg.Session.PasscodeHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if !sessionUC.Enabled() {
		log.Warn().Msg("PASSCODE_HASH vacío: la API no pide código de acceso")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    16 * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Autoparts Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "remote": store.Remote})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC: productUC,
		SaleUC:    saleUC,
		CreditUC:  creditUC,
		PaymentUC: paymentUC,
		LedgerUC:  ledgerUC,
		SessionUC: sessionUC,
		Gateway:   gw,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
