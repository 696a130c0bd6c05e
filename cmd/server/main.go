package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	billingapp "github.com/mms/backend/internal/application/billing"
	educationapp "github.com/mms/backend/internal/application/education"
	financeapp "github.com/mms/backend/internal/application/finance"
	identityapp "github.com/mms/backend/internal/application/identity"
	ledgerapp "github.com/mms/backend/internal/application/ledger"
	membershipapp "github.com/mms/backend/internal/application/membership"
	"github.com/mms/backend/internal/infrastructure/auth"
	"github.com/mms/backend/internal/infrastructure/cache"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/logger"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/internal/interfaces/http/handler"
	"github.com/mms/backend/internal/interfaces/http/middleware"
	"github.com/mms/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting MMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	accountCategoryRepo := persistence.NewGormAccountCategoryRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	houseRepo := persistence.NewGormHouseRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	duesRepo := persistence.NewGormDuesRepository(db.DB)
	memberPaymentRepo := persistence.NewGormMemberPaymentRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	billingPaymentRepo := persistence.NewGormBillingPaymentRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	donationRepo := persistence.NewGormDonationRepository(db.DB)
	donationCategoryRepo := persistence.NewGormDonationCategoryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	expenseCategoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	classRepo := persistence.NewGormClassRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)
	feePaymentRepo := persistence.NewGormFeePaymentRepository(db.DB)

	txManager := persistence.NewTxManager(db.DB)

	// Report cache (Redis with in-memory fallback)
	var reportCache cache.ReportCache
	if cfg.Cache.Enabled {
		cacheFactory := cache.NewReportCacheFactory(cfg.Redis, cache.WithLogger(log))
		reportCache, err = cacheFactory.CreateCache()
		if err != nil {
			log.Fatal("Failed to create report cache", zap.Error(err))
		}
		defer func() {
			if err := reportCache.Close(); err != nil {
				log.Error("Error closing report cache", zap.Error(err))
			}
		}()
	}

	// Application services
	postingService := ledgerapp.NewPostingService(accountRepo, accountCategoryRepo, transactionRepo)
	chartService := ledgerapp.NewChartOfAccountsService(accountRepo, transactionRepo, postingService, cfg.Accounts)
	donationService := financeapp.NewDonationService(donationRepo, donationCategoryRepo, postingService, txManager, cfg.Accounts)
	expenseService := financeapp.NewExpenseService(expenseRepo, expenseCategoryRepo, postingService, txManager, cfg.Accounts)
	summaryService := financeapp.NewSummaryService(donationRepo, expenseRepo, reportCache, cfg.Cache, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, billingPaymentRepo, shopRepo, postingService, txManager, cfg.Accounts)
	houseService := membershipapp.NewHouseService(houseRepo, memberRepo, duesRepo)
	duesService := membershipapp.NewDuesService(houseRepo, duesRepo, memberPaymentRepo, postingService, txManager, cfg.Accounts, cfg.Dues, log)
	enrollmentService := educationapp.NewEnrollmentService(studentRepo, classRepo, enrollmentRepo, feePaymentRepo, postingService, txManager, cfg.Accounts)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(jwtService, cfg.Admin, log)

	// Seed the chart of accounts before accepting requests
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := chartService.Setup(ctx); err != nil {
		cancel()
		log.Fatal("Failed to set up chart of accounts", zap.Error(err))
	}
	cancel()
	log.Info("Chart of accounts ready")

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/login",
		},
		Logger: log,
	}))

	r.Register(handler.NewSystemHandler(db.DB))
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewLedgerHandler(chartService))
	r.Register(handler.NewFinanceHandler(donationService, expenseService, summaryService))
	r.Register(handler.NewBillingHandler(invoiceService))
	r.Register(handler.NewMembershipHandler(houseService, duesService))
	r.Register(handler.NewEducationHandler(enrollmentService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
