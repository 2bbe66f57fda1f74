package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-ledger/internal/application/auth"
	"github.com/jhoicas/autoparts-ledger/internal/application/credit"
	"github.com/jhoicas/autoparts-ledger/internal/application/gateway"
	"github.com/jhoicas/autoparts-ledger/internal/application/sales"
	"github.com/jhoicas/autoparts-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC *usecase.ProductUseCase
	SaleUC    *sales.RecordSaleUseCase
	CreditUC  *credit.CreditUseCase
	PaymentUC *credit.PaymentUseCase
	LedgerUC  *credit.LedgerUseCase
	SessionUC *auth.SessionUseCase
	Gateway   *gateway.Gateway
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.SessionUC)
	api.Post("/session", sessionHandler.Unlock)

	// Resto protegido por el código de acceso (si está configurado)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.SessionUC.Enabled()))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/catalog", productHandler.Catalog)
	products.Get("/export", productHandler.Export)
	products.Post("/import", productHandler.Import)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)

	creditHandler := NewCreditHandler(deps.CreditUC, deps.PaymentUC)
	credits := protected.Group("/credits")
	credits.Get("/", creditHandler.ListCredits)
	credits.Post("/", creditHandler.CreateCredit)
	credits.Delete("/:id", creditHandler.DeleteCredit)

	payments := protected.Group("/payments")
	payments.Get("/", creditHandler.ListPayments)
	payments.Post("/", creditHandler.RecordPayment)
	payments.Delete("/:id", creditHandler.DeletePayment)

	ledgerGroup := protected.Group("/ledger")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Get("/buyers", ledgerHandler.Buyers)
	ledgerGroup.Get("/buyers/:name/statement.pdf", ledgerHandler.StatementPDF)
	ledgerGroup.Get("/buyers/:name/statement", ledgerHandler.Statement)
	ledgerGroup.Get("/outstanding", ledgerHandler.Outstanding)
	ledgerGroup.Get("/consistency", ledgerHandler.Consistency)
	ledgerGroup.Get("/directory", ledgerHandler.Directory)

	protected.Post("/sync", NewSyncHandler(deps.Gateway).Sync)
}
