package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	billingapp "github.com/hms/backend/internal/application/billing"
	clinicalapp "github.com/hms/backend/internal/application/clinical"
	facilityapp "github.com/hms/backend/internal/application/facility"
	patientapp "github.com/hms/backend/internal/application/patient"
	pharmacyapp "github.com/hms/backend/internal/application/pharmacy"
	reportapp "github.com/hms/backend/internal/application/report"
	staffapp "github.com/hms/backend/internal/application/staff"
	"github.com/hms/backend/internal/infrastructure/cache"
	"github.com/hms/backend/internal/infrastructure/config"
	"github.com/hms/backend/internal/infrastructure/logger"
	"github.com/hms/backend/internal/infrastructure/persistence"
	"github.com/hms/backend/internal/infrastructure/storage"
	"github.com/hms/backend/internal/infrastructure/telemetry"
	"github.com/hms/backend/internal/interfaces/http/handler"
	"github.com/hms/backend/internal/interfaces/http/middleware"
	"github.com/hms/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting HMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing (otelgorm)
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.App.Env == "development",
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	bedTypeRepo := persistence.NewGormBedTypeRepository(db.DB)
	bedRepo := persistence.NewGormBedRepository(db.DB)
	patientRepo := persistence.NewGormPatientRepository(db.DB)
	admissionRepo := persistence.NewGormAdmissionRepository(db.DB)
	staffRepo := persistence.NewGormStaffRepository(db.DB)
	payrollRepo := persistence.NewGormPayrollRepository(db.DB)
	medicineRepo := persistence.NewGormMedicineRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	insuranceRepo := persistence.NewGormInsuranceRepository(db.DB)
	packageRepo := persistence.NewGormTreatmentPackageRepository(db.DB)
	pathologyCategoryRepo := persistence.NewGormPathologyCategoryRepository(db.DB)
	prescriptionRepo := persistence.NewGormPrescriptionRepository(db.DB)
	investigationReportRepo := persistence.NewGormInvestigationReportRepository(db.DB)

	// Label cache for cross-aggregate display names
	labelCache, err := cache.NewLabelCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create label cache", zap.Error(err))
	}
	labels := cache.NewResolver(labelCache, log)
	labels.RegisterLoader("bed_type", func(ctx context.Context, id uuid.UUID) (string, error) {
		bedType, err := bedTypeRepo.FindByID(ctx, id)
		if err != nil {
			return "", err
		}
		return bedType.Name, nil
	})

	// Image store for profile pictures and report attachments
	imageStore, err := storage.NewImageStore(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to create image store", zap.Error(err))
	}

	// Initialize application services
	bedTypeService := facilityapp.NewBedTypeService(bedTypeRepo, bedRepo)
	bedService := facilityapp.NewBedService(bedRepo, bedTypeRepo)
	bedService.SetLabelResolver(labels)
	patientService := patientapp.NewPatientService(patientRepo)
	patientService.SetImageRemover(imageStore)
	admissionService := patientapp.NewAdmissionService(admissionRepo, patientRepo, bedRepo)
	staffService := staffapp.NewStaffService(staffRepo)
	staffService.SetImageRemover(imageStore)
	payrollService := staffapp.NewPayrollService(payrollRepo, staffRepo)
	medicineService := pharmacyapp.NewMedicineService(medicineRepo)
	purchaseService := pharmacyapp.NewPurchaseService(purchaseRepo, medicineRepo)
	insuranceService := billingapp.NewInsuranceService(insuranceRepo)
	packageService := billingapp.NewPackageService(packageRepo)
	categoryService := clinicalapp.NewCategoryService(pathologyCategoryRepo)
	prescriptionService := clinicalapp.NewPrescriptionService(prescriptionRepo, patientRepo)
	reportService := clinicalapp.NewReportService(investigationReportRepo, pathologyCategoryRepo, patientRepo)
	reportService.SetAttachmentRemover(imageStore)
	dashboardService := reportapp.NewDashboardService(patientRepo, admissionRepo, bedRepo, medicineRepo, staffRepo)

	// Initialize HTTP handlers
	systemHandler := handler.NewSystemHandler()
	systemHandler.AddReadyCheck("database", db.Ping)
	bedTypeHandler := handler.NewBedTypeHandler(bedTypeService)
	bedHandler := handler.NewBedHandler(bedService)
	patientHandler := handler.NewPatientHandler(patientService)
	admissionHandler := handler.NewAdmissionHandler(admissionService)
	staffHandler := handler.NewStaffHandler(staffService)
	payrollHandler := handler.NewPayrollHandler(payrollService)
	medicineHandler := handler.NewMedicineHandler(medicineService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService)
	packageHandler := handler.NewPackageHandler(packageService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionService)
	reportHandler := handler.NewReportHandler(reportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Record request spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.Secure())

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Liveness endpoint outside API versioning for load balancers
	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	})

	// Register API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(dashboardHandler).
		Register(bedTypeHandler).
		Register(bedHandler).
		Register(patientHandler).
		Register(admissionHandler).
		Register(staffHandler).
		Register(payrollHandler).
		Register(medicineHandler).
		Register(purchaseHandler).
		Register(insuranceHandler).
		Register(packageHandler).
		Register(categoryHandler).
		Register(prescriptionHandler).
		Register(reportHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
