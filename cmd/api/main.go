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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/jhoicas/imprenta-api/internal/application/analytics"
	"github.com/jhoicas/imprenta-api/internal/application/auth"
	"github.com/jhoicas/imprenta-api/internal/application/billing"
	"github.com/jhoicas/imprenta-api/internal/application/inventory"
	"github.com/jhoicas/imprenta-api/internal/application/orders"
	"github.com/jhoicas/imprenta-api/internal/application/usecase"
	"github.com/jhoicas/imprenta-api/internal/domain/repository"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/imprenta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/imprenta-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/imprenta-api/internal/interfaces/http"
	"github.com/jhoicas/imprenta-api/internal/scheduler"
	"github.com/jhoicas/imprenta-api/pkg/config"
	"github.com/jhoicas/imprenta-api/pkg/logger"
)

// backend repositorios del driver elegido (postgres o memory).
type backend struct {
	txRunner  inventory.TxRunner
	stock     repository.StockRepository
	additions repository.StockAdditionRepository
	usage     repository.UsageRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	expenses  repository.ExpenseRepository
	quotes    repository.QuoteRepository
	analytics repository.AnalyticsRepository
	close     func()
}

func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &backend{
			txRunner:  s,
			stock:     s.StockRepository(),
			additions: s.StockAdditionRepository(),
			usage:     s.UsageRepository(),
			orders:    s.OrderRepository(),
			users:     s.UserRepository(),
			expenses:  s.ExpenseRepository(),
			quotes:    s.QuoteRepository(),
			analytics: s.AnalyticsRepository(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &backend{
		txRunner:  postgres.NewTxRunner(pool),
		stock:     postgres.NewStockRepository(pool),
		additions: postgres.NewStockAdditionRepository(pool),
		usage:     postgres.NewUsageRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		users:     postgres.NewUserRepository(pool),
		expenses:  postgres.NewExpenseRepository(pool),
		quotes:    postgres.NewQuoteRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}

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
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer be.close()

	ledger := inventory.NewLedgerService(be.txRunner, be.stock, be.additions, be.usage, log.Named("ledger"))
	orderSvc := orders.NewService(be.txRunner, be.orders, be.users, ledger, log.Named("orders"))
	authUC := auth.NewAuthUseCase(be.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Named("auth"))
	expenseUC := usecase.NewExpenseUseCase(be.expenses)
	quoteUC := usecase.NewQuoteUseCase(be.quotes)
	dashboardUC := appanalytics.NewDashboardUseCase(be.analytics)
	billUC := billing.NewBillUseCase(be.orders, infrapdf.NewMarotoPDFGenerator(), billing.ShopInfo{
		Name:    cfg.Shop.Name,
		Address: cfg.Shop.Address,
		Phone:   cfg.Shop.Phone,
		Email:   cfg.Shop.Email,
	})

	if err := authUC.SeedDefaultUsers(ctx, cfg.Seed.OwnerPassword, cfg.Seed.WorkerPassword); err != nil {
		log.Fatal().Err(err).Msg("crear cuentas por defecto")
	}

	sched := scheduler.NewScheduler(cfg.Report.CronSchedule, dashboardUC, log.Named("scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Imprenta API",
		}))
	} else {
		log.Info().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado, /docs desactivado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Ledger:      ledger,
		Orders:      orderSvc,
		ExpenseUC:   expenseUC,
		QuoteUC:     quoteUC,
		DashboardUC: dashboardUC,
		BillUC:      billUC,
		JWTSecret:   cfg.JWT.Secret,
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
	sched.Stop()

	log.Info().Msg("aplicación detenida")
}
