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

	_ "github.com/jhoicas/stock-ledger-api/docs"
	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/events"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// stores agrupa los repositorios del driver elegido.
type stores struct {
	products     repository.ProductRepository
	categories   repository.CategoryRepository
	suppliers    repository.SupplierRepository
	users        repository.UserRepository
	transactions repository.TransactionRepository
	txRunner     inventory.TxRunner
	close        func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return stores{
			products:     s.Products(),
			categories:   s.Categories(),
			suppliers:    s.Suppliers(),
			users:        s.Users(),
			transactions: s.Transactions(),
			txRunner:     s.TxRunner(),
			close:        func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	log.Info().Bool("auto_migrate", cfg.DB.AutoMigrate).Int32("max_conns", pool.Config().MaxConns).Msg("PostgreSQL listo")
	return stores{
		products:     postgres.NewProductRepository(pool),
		categories:   postgres.NewCategoryRepository(pool),
		suppliers:    postgres.NewSupplierRepository(pool),
		users:        postgres.NewUserRepository(pool),
		transactions: postgres.NewTransactionRepository(pool),
		txRunner:     postgres.NewTxRunner(pool),
		close:        pool.Close,
	}
}

// @title                       Stock Ledger API
// @version                     1.0
// @description                 API de inventario: motor de stock, libro mayor de transacciones y dashboard.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	st := openStores(ctx, cfg, log)
	defer st.close()

	// Eventos del libro mayor: WebSocket siempre, Kafka si hay brokers
	hub := events.NewHub(log.Component("ws"))
	go hub.Run(ctx)
	publishers := events.Fanout{hub}
	if cfg.Kafka.Enabled() {
		kafkaPub, err := events.NewKafkaPublisher(events.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			log.Fatal().Err(err).Msg("publicador Kafka")
		}
		defer kafkaPub.Close()
		publishers = append(publishers, kafkaPub)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", kafkaPub.Topic()).Msg("publicando eventos en Kafka")
	}

	stockUC := inventory.NewStockMutationUseCase(st.txRunner, publishers, inventory.Config{
		MaxRetries: cfg.Inventory.MaxRetries,
	}, log.Component("stock"))
	ledgerUC := ledger.NewLedgerUseCase(st.transactions, st.products, st.suppliers, st.users, publishers, log.Component("ledger"))
	receiptUC := ledger.NewReceiptUseCase(ledgerUC, infrapdf.NewMarotoReceiptGenerator(cfg.App.Name))
	productUC := usecase.NewProductUseCase(st.products, st.categories)
	categoryUC := usecase.NewCategoryUseCase(st.categories)
	supplierUC := usecase.NewSupplierUseCase(st.suppliers)
	userUC := usecase.NewUserUseCase(st.users)
	dashboardUC := appanalytics.NewDashboardUseCase(st.products, st.categories, st.suppliers, st.users, st.transactions, appanalytics.Config{
		LowStockThreshold: &cfg.Inventory.LowStockThreshold,
		ExpiryWindowDays:  cfg.Inventory.ExpiryWindowDays,
	})
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		ProductUC:         productUC,
		CategoryUC:        categoryUC,
		SupplierUC:        supplierUC,
		UserUC:            userUC,
		StockUC:           stockUC,
		LedgerUC:          ledgerUC,
		ReceiptUC:         receiptUC,
		DashboardUC:       dashboardUC,
		Hub:               hub,
		JWTSecret:         cfg.JWT.Secret,
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
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
	stop()

	log.Info().Msg("aplicación detenida")
}
