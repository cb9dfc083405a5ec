package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/auth"
	"github.com/jhoicas/spa-pos-api/internal/application/identity"
	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/application/report"
	"github.com/jhoicas/spa-pos-api/internal/application/transaction"
	"github.com/jhoicas/spa-pos-api/internal/domain/businessdate"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
	"github.com/jhoicas/spa-pos-api/internal/infrastructure/excel"
	"github.com/jhoicas/spa-pos-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/spa-pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/spa-pos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/spa-pos-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/spa-pos-api/internal/interfaces/http"
	"github.com/jhoicas/spa-pos-api/pkg/config"
	"github.com/jhoicas/spa-pos-api/pkg/logger"
	"github.com/jhoicas/spa-pos-api/pkg/metrics"
)

// txRunner lo implementan tanto postgres.TxRunner como memory.Store.
type txRunner interface {
	inventory.TxRunner
	transaction.TxRunner
}

// storage repositorios de la fuente elegida en DB_DRIVER.
type storage struct {
	users        repository.UserRepository
	items        repository.InventoryItemRepository
	adjustments  repository.InventoryAdjustmentRepository
	transactions repository.TransactionRepository
	auditLog     repository.AuditLogRepository
	runner       txRunner
	close        func()
}

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	loc, err := cfg.Business.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria del negocio")
	}
	calendar, err := businessdate.NewCalendar(loc, cfg.Business.CutoffHour, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("calendario de negocio")
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	// Redis opcional: lista de tokens revocados y lock del conteo diario
	var (
		revoked identity.RevocationStore = memory.NewDenylist()
		locker  inventory.Locker         = memory.NewLocker()
	)
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		revoked = infraredis.NewDenylist(rdb)
		locker = infraredis.NewLocker(rdb)
		log.Info().Msg("redis habilitado para sesiones y locks")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	ledgerMetrics := metrics.NewLedgerMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	recorder := audit.NewRecorder(store.auditLog, log, ledgerMetrics)
	resolver := identity.NewResolver(cfg.JWT.Secret, revoked)
	authUC := auth.NewAuthUseCase(store.users, resolver, recorder, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	inventoryLedger := inventory.NewLedger(store.runner, calendar, recorder, locker, ledgerMetrics)
	catalogUC := inventory.NewCatalogUseCase(store.runner, store.items, store.adjustments, calendar, recorder, ledgerMetrics)
	lowStockUC := inventory.NewLowStockUseCase(store.items)
	txLedger := transaction.NewLedger(store.runner, store.transactions, calendar, recorder, ledgerMetrics)
	reportUC := report.NewUseCase(store.transactions, calendar,
		excel.NewTransactionsExporter(loc),
		infrapdf.NewDailyReportGenerator(cfg.App.Name, loc),
	)
	logUC := audit.NewLogUseCase(recorder, store.auditLog)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.WithStr("component", "http"), httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Spa POS API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Resolver:     resolver,
		Inventory:    inventoryLedger,
		Catalog:      catalogUC,
		LowStock:     lowStockUC,
		Transactions: txLedger,
		Reports:      reportUC,
		Logs:         logUC,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: !cfg.App.IsDev(),
		},
		Gatherer:    reg,
		ServiceName: cfg.App.Name,
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

// openStorage abre el pool de PostgreSQL (y migra si DB_AUTO_MIGRATE) o crea el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &storage{
			users:        m.Users(),
			items:        m.Items(),
			adjustments:  m.Adjustments(),
			transactions: m.Transactions(),
			auditLog:     m.AuditLog(),
			runner:       m,
			close:        func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		db := postgres.SQLDB(pool)
		err := postgres.Migrate(ctx, db, "up")
		_ = db.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		users:        postgres.NewUserRepository(pool),
		items:        postgres.NewInventoryItemRepository(pool),
		adjustments:  postgres.NewInventoryAdjustmentRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		auditLog:     postgres.NewAuditLogRepository(pool),
		runner:       postgres.NewTxRunner(pool),
		close:        pool.Close,
	}, nil
}
