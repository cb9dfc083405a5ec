package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/auth"
	"github.com/jhoicas/spa-pos-api/internal/application/identity"
	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/application/report"
	"github.com/jhoicas/spa-pos-api/internal/application/transaction"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Resolver     *identity.Resolver
	Inventory    *inventory.Ledger
	Catalog      *inventory.CatalogUseCase
	LowStock     *inventory.LowStockUseCase
	Transactions *transaction.Ledger
	Reports      *report.UseCase
	Logs         *audit.LogUseCase
	Cookie       CookieConfig
	// Gatherer origen de /metrics; nil = sin endpoint de métricas.
	Gatherer    prometheus.Gatherer
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Resolver, deps.Cookie.Name)
	optionalAuth := OptionalAuth(deps.Resolver, deps.Cookie.Name)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", optionalAuth, authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Bitácora: el frontend registra eventos aun sin sesión
	logHandler := NewLogHandler(deps.Logs)
	api.Post("/log", optionalAuth, logHandler.Record)
	api.Get("/logs", requireAuth, adminOnly, logHandler.List)

	// Inventario (protegido)
	invHandler := NewInventoryHandler(deps.Inventory, deps.Catalog, deps.LowStock)
	inv := api.Group("/inventory", requireAuth)
	inv.Get("/items", invHandler.ListItems)
	inv.Post("/items", adminOnly, invHandler.CreateItem)
	inv.Get("/items/:id", invHandler.GetItem)
	inv.Patch("/items/:id", adminOnly, invHandler.UpdateItem)
	inv.Get("/items/:id/adjustments", invHandler.ItemHistory)
	inv.Get("/low-stock", invHandler.LowStock)
	inv.Post("/receive", invHandler.Receive)
	inv.Post("/daily", invHandler.DailyCount)
	inv.Post("/adjust", adminOnly, invHandler.Adjust)

	// Transacciones (protegido). /export antes de /:id
	reportHandler := NewReportHandler(deps.Reports)
	txHandler := NewTransactionHandler(deps.Transactions)
	txs := api.Group("/transactions", requireAuth)
	txs.Get("/", txHandler.List)
	txs.Post("/", txHandler.Create)
	txs.Get("/export", adminOnly, reportHandler.ExportHistory)
	txs.Get("/:id", txHandler.GetByID)
	txs.Patch("/:id", txHandler.Patch)

	// Reportes (protegido)
	reports := api.Group("/reports", requireAuth)
	reports.Get("/daily", reportHandler.DailySummary)
	reports.Get("/daily.pdf", adminOnly, reportHandler.DailyPDF)
}
