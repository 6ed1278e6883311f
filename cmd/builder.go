package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"storefront/api"
	apicatalog "storefront/api/catalog"
	apidashboard "storefront/api/dashboard"
	"storefront/api/health"
	apiorder "storefront/api/order"
	catalogapp "storefront/application/catalog"
	dashboardapp "storefront/application/dashboard"
	orderapp "storefront/application/order"
	"storefront/config"
	catalogdomain "storefront/domain/catalog"
	orderdomain "storefront/domain/order"
	"storefront/domain/pricing"
	"storefront/domain/shared"
	"storefront/domain/shipping"
	"storefront/infrastructure/messaging/kafka"
	"storefront/infrastructure/persistence/memory"
	"storefront/infrastructure/persistence/mysql"
	"storefront/infrastructure/persistence/retry"
	"storefront/notification"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder assembles the application from configuration: persistence
// (MySQL or in-memory), notifications, the outbox worker, and the HTTP
// stack.
type AppBuilder struct {
	cfg *config.Config
}

func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// Build wires everything together. It exits the process on unrecoverable
// startup failures such as an unreachable database.
func (b *AppBuilder) Build() *App {
	if err := logger.Init(&b.cfg.Log, b.cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("database", b.cfg.Database.Type))

	var (
		db          *gorm.DB
		productRepo catalogdomain.Repository
		orderRepo   orderdomain.Repository
		regionRepo  shipping.Repository
		uowFactory  shared.UnitOfWorkFactory
		dashQuery   dashboardapp.Query
		worker      *mysql.OutboxWorker
	)

	if b.cfg.Database.Type == "mysql" {
		db, productRepo, orderRepo, regionRepo, uowFactory, dashQuery = b.initMySQL()
		worker = b.initOutboxWorker(db)
	} else {
		productRepo, orderRepo, regionRepo, uowFactory, dashQuery = b.initMemory()
	}

	dispatcher := b.initDispatcher()
	resolver := pricing.NewResolver(productRepo, regionRepo)

	productService := catalogapp.NewApplicationService(productRepo, uowFactory)
	orderService := orderapp.NewApplicationService(orderRepo, productRepo, resolver, uowFactory, dispatcher)
	dashboardService := dashboardapp.NewService(dashQuery)

	router := api.NewRouter(
		b.cfg,
		health.NewController(b.cfg, sqlDBFrom(db)),
		apicatalog.NewController(productService),
		apiorder.NewController(orderService),
		apidashboard.NewController(dashboardService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
		worker: worker,
	}
}

func (b *AppBuilder) initMySQL() (*gorm.DB, catalogdomain.Repository, orderdomain.Repository, shipping.Repository, shared.UnitOfWorkFactory, dashboardapp.Query) {
	logger.Info("Using MySQL/GORM persistence layer")

	db, err := NewMySQLConfig(b.cfg).Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying sql.DB", zap.Error(err))
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Failed to ping MySQL", zap.Error(err))
	}

	logger.Info("Connected to MySQL successfully")

	regionRepo := mysql.NewShippingRegionRepository(db)

	if b.cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to auto migrate", zap.Error(err))
		}
		if err := regionRepo.Seed(context.Background(), defaultRegions()...); err != nil {
			logger.Fatal("Failed to seed shipping regions", zap.Error(err))
		}
	}

	return db,
		mysql.NewProductRepository(db),
		mysql.NewOrderRepository(db),
		regionRepo,
		mysql.NewUnitOfWorkFactory(db, retry.FromAppConfig(b.cfg)),
		mysql.NewDashboardQuery(db)
}

func (b *AppBuilder) initMemory() (catalogdomain.Repository, orderdomain.Repository, shipping.Repository, shared.UnitOfWorkFactory, dashboardapp.Query) {
	logger.Info("Using in-memory persistence layer")

	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()
	regionRepo := memory.NewShippingRegionRepository()
	regionRepo.Seed(defaultRegions()...)

	return productRepo,
		orderRepo,
		regionRepo,
		memory.NewUnitOfWorkFactory(),
		memory.NewDashboardQuery(orderRepo)
}

func (b *AppBuilder) initOutboxWorker(db *gorm.DB) *mysql.OutboxWorker {
	if !b.cfg.Outbox.Enabled {
		return nil
	}

	var publisher mysql.OutboxPublisher
	if b.cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(b.cfg.Kafka)
	} else {
		publisher = &mysql.LoggingOutboxPublisher{}
	}

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		publisher,
		b.cfg.Outbox.PollInterval,
		b.cfg.Outbox.BatchSize,
		b.cfg.Outbox.MaxRetries,
	)
	if err != nil {
		logger.Fatal("Failed to create outbox worker", zap.Error(err))
	}
	return worker
}

func (b *AppBuilder) initDispatcher() notification.Dispatcher {
	if b.cfg.SMTP.Enabled {
		logger.Info("Customer notifications go out via SMTP",
			zap.String("host", b.cfg.SMTP.Host))
		return notification.NewMailer(b.cfg.SMTP)
	}
	return notification.NewLogDispatcher()
}

func sqlDBFrom(db *gorm.DB) *sql.DB {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil
	}
	return sqlDB
}

// defaultRegions is the initial set of shipping regions, seeded into
// whichever store is active. Fees are in dinars.
func defaultRegions() []shipping.Region {
	return []shipping.Region{
		shipping.NewRegion("Alger", 400, 200),
		shipping.NewRegion("Blida", 450, 250),
		shipping.NewRegion("Oran", 600, 350),
		shipping.NewRegion("Constantine", 600, 350),
		shipping.NewRegion("Annaba", 650, 400),
		shipping.NewRegion("Setif", 550, 300),
		shipping.NewRegion("Tizi Ouzou", 500, 300),
		shipping.NewRegion("Bejaia", 550, 300),
		shipping.NewRegion("Tlemcen", 700, 400),
		shipping.NewRegion("Ouargla", 900, 600),
	}
}
