package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devbyteai/BetStack-sub001/internal/config"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/events"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/jobs"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/providers"
	"github.com/devbyteai/BetStack-sub001/internal/infrastructure/repositories"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/handlers"
	"github.com/devbyteai/BetStack-sub001/internal/interfaces/http/middleware"
	"github.com/devbyteai/BetStack-sub001/internal/usecases"
	"github.com/devbyteai/BetStack-sub001/pkg/jwt"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
	"github.com/devbyteai/BetStack-sub001/pkg/redis"
)

const providerDispatchTimeout = 30 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	bonusRepo := repositories.NewBonusRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Provider dispatch and ledger event stream
	gateway := providers.NewFactory(cfg.Payments.ProviderBaseURL, cfg.Payments.ProviderAPIKey, providerDispatchTimeout)

	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic))
		logger.Info(context.Background(), "Kafka publisher enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	} else {
		publisher = events.NewPublisher(nil)
		logger.Info(context.Background(), "Kafka publisher disabled (no brokers configured)")
	}
	defer publisher.Close()

	// Usecases
	walletUsecase := usecases.NewWalletUsecase(walletRepo, transactionRepo, cfg.Wallet.Currency)
	paymentUsecase := usecases.NewPaymentUsecase(walletRepo, transactionRepo, userRepo, uow, gateway, publisher, cfg.Payments.MinWithdrawal, cfg.Wallet.Currency)
	callbackUsecase := usecases.NewCallbackUsecase(walletRepo, transactionRepo, uow, publisher)
	bonusUsecase := usecases.NewBonusUsecase(bonusRepo, walletRepo, transactionRepo, uow, publisher, cfg.Wallet.Currency)
	bettingUsecase := usecases.NewBettingUsecase(walletRepo, transactionRepo, uow, publisher, bonusUsecase)

	// Handlers
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	callbackHandler := handlers.NewCallbackHandler(callbackUsecase)
	bonusHandler := handlers.NewBonusHandler(bonusUsecase)
	settlementHandler := handlers.NewSettlementHandler(bettingUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewPendingExpiryJob(transactionRepo, paymentUsecase, bonusUsecase, cfg.Payments.PendingExpiry, cfg.Payments.ExpiryInterval)
	go expiryJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		walletHandler:     walletHandler,
		paymentHandler:    paymentHandler,
		callbackHandler:   callbackHandler,
		bonusHandler:      bonusHandler,
		settlementHandler: settlementHandler,
		authMiddleware:    authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	log.Printf("Wallet service starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
