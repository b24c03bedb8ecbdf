package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingapp "github.com/eventops/backend/internal/application/billing"
	financeapp "github.com/eventops/backend/internal/application/finance"
	partnerapp "github.com/eventops/backend/internal/application/partner"
	payrollapp "github.com/eventops/backend/internal/application/payroll"
	"github.com/eventops/backend/internal/domain/finance"
	"github.com/eventops/backend/internal/infrastructure/config"
	"github.com/eventops/backend/internal/infrastructure/logger"
	"github.com/eventops/backend/internal/infrastructure/persistence"
	"github.com/eventops/backend/internal/infrastructure/rendering"
	"github.com/eventops/backend/internal/interfaces/http/handler"
	"github.com/eventops/backend/internal/interfaces/http/middleware"
	"github.com/eventops/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logFormat := cfg.Log.Format
	if logFormat == "" {
		if cfg.App.Env == "production" {
			logFormat = "json"
		} else {
			logFormat = "console"
		}
	}
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     logFormat,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName),
	)

	// Initialize repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)

	// Postings rebuild their repositories on the transaction handle so
	// the guard check and the writes share one transaction
	repoFactory := func(tx *gorm.DB) financeapp.Repositories {
		return financeapp.Repositories{
			Invoices:  persistence.NewGormInvoiceRepository(tx),
			Vendors:   persistence.NewGormVendorRepository(tx),
			Employees: persistence.NewGormEmployeeRepository(tx),
			Entries:   persistence.NewGormEntryRepository(tx),
		}
	}

	// Initialize PDF renderer chain
	renderer, err := buildRenderer(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Failed to close renderer", zap.Error(err))
		}
	}()

	// Initialize application services
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo)
	documentService := billingapp.NewDocumentService(invoiceRepo, customerRepo, renderer, billingapp.CompanyProfile{
		Name:      cfg.Company.Name,
		Address:   cfg.Company.Address,
		Phone:     cfg.Company.Phone,
		GSTIN:     cfg.Company.GSTIN,
		StateCode: cfg.Company.StateCode,
	})
	ledgerService := financeapp.NewLedgerService(db.DB, repoFactory, finance.NewGuard())
	cycleService := payrollapp.NewCycleService(employeeRepo, entryRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	vendorService := partnerapp.NewVendorService(vendorRepo)
	employeeService := partnerapp.NewEmployeeService(employeeRepo)

	// Initialize HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Middleware stack
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness probe for load balancers; readiness lives under
	// /api/v1/system/health and includes the database
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewInvoiceHandler(invoiceService, documentService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewVendorHandler(vendorService)).
		Register(handler.NewEmployeeHandler(employeeService, cycleService)).
		Register(handler.NewLedgerHandler(ledgerService)).
		Register(handler.NewSystemHandler(db.DB)).
		Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

// buildRenderer assembles the three-strategy PDF rendering chain:
// the bundled Chromium binary first, then an installed Chrome, then a
// bare-flags launch as the last resort. A strategy that cannot even be
// constructed (missing binary) is skipped rather than fatal.
func buildRenderer(cfg *config.Config, log *zap.Logger) (rendering.PDFRenderer, error) {
	base := rendering.ChromeConfig{
		DefaultTimeout: cfg.Render.AttemptTimeout,
		SettleDelay:    cfg.Render.SettleDelay,
		Logger:         log,
	}

	var renderers []rendering.PDFRenderer

	if cfg.Render.ChromiumPath != "" {
		managedCfg := base
		managed, err := rendering.NewManagedChromeRenderer(cfg.Render.ChromiumPath, &managedCfg)
		if err != nil {
			log.Warn("Managed Chromium unavailable, skipping strategy",
				zap.String("path", cfg.Render.ChromiumPath),
				zap.Error(err),
			)
		} else {
			renderers = append(renderers, managed)
		}
	}

	localCfg := base
	local, err := rendering.NewLocalChromeRenderer(&localCfg)
	if err != nil {
		log.Warn("Local Chrome strategy unavailable", zap.Error(err))
	} else {
		renderers = append(renderers, local)
	}

	minimalCfg := base
	minimal, err := rendering.NewMinimalChromeRenderer(&minimalCfg)
	if err != nil {
		log.Warn("Minimal Chrome strategy unavailable", zap.Error(err))
	} else {
		renderers = append(renderers, minimal)
	}

	return rendering.NewFallbackRenderer(log, renderers...)
}
