package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sit-academy/enrollment-api/api/swagger"
	"github.com/sit-academy/enrollment-api/internal/handler"
	"github.com/sit-academy/enrollment-api/internal/middleware"
	"github.com/sit-academy/enrollment-api/internal/models"
	"github.com/sit-academy/enrollment-api/internal/repository"
	"github.com/sit-academy/enrollment-api/internal/service"
	"github.com/sit-academy/enrollment-api/pkg/cache"
	"github.com/sit-academy/enrollment-api/pkg/config"
	"github.com/sit-academy/enrollment-api/pkg/database"
	"github.com/sit-academy/enrollment-api/pkg/jobs"
	"github.com/sit-academy/enrollment-api/pkg/logger"
	corsmiddleware "github.com/sit-academy/enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sit-academy/enrollment-api/pkg/middleware/requestid"
	"github.com/sit-academy/enrollment-api/pkg/payment"
)

// @title SIT Enrollment API
// @version 1.0.0
// @description Course-batch enrollment and seat accounting for SIT Academy
// @BasePath /api
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Catalog.CacheTTL, logr, cfg.Catalog.CacheEnabled || cfg.Analysis.CacheEnabled)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	var gateway *payment.SnapGateway
	if cfg.Payment.Enabled {
		gateway = payment.NewSnapGateway(payment.Config{
			ServerKey:  cfg.Payment.ServerKey,
			Production: cfg.Payment.Production,
		})
	} else {
		logr.Warn("payment gateway disabled, priced enrollments will fail")
	}

	notifier := service.NewNotificationService(logr, jobs.QueueConfig{
		Workers:    cfg.Inquiries.Workers,
		BufferSize: cfg.Inquiries.BufferSize,
		MaxRetries: cfg.Inquiries.MaxRetries,
		RetryDelay: cfg.Inquiries.RetryDelay,
	})
	notifier.Start(context.Background())
	defer notifier.Stop()

	resolver := service.NewIntentResolver(validate)
	workflow := newWorkflow(inquiryRepo, enrollmentRepo, gateway, notifier, metrics, logr)
	catalogSvc := service.NewCatalogService(courseRepo, cacheSvc, metrics, logr, cfg.Catalog.CacheTTL)
	analysisSvc := service.NewAnalysisService(enrollmentRepo, courseRepo, cacheSvc, metrics, logr, cfg.Analysis.CacheTTL)
	inquirySvc := service.NewInquiryService(inquiryRepo, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(resolver, workflow)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	batchHandler := handler.NewBatchHandler(catalogSvc, analysisSvc)
	inquiryHandler := handler.NewInquiryHandler(inquirySvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.JWT(authSvc), authHandler.Me)

		api.GET("/courses", catalogHandler.CourseAndBatchDetails)
		api.POST("/enroll", middleware.OptionalJWT(authSvc), enrollmentHandler.Enroll)

		admin := api.Group("", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/batches", batchHandler.List)
			admin.GET("/batches/:id/analysis", batchHandler.Analysis)
			admin.GET("/batches/:id/students", batchHandler.Students)
			admin.GET("/batches/:id/students/export", batchHandler.ExportStudents)
			admin.GET("/inquiries", inquiryHandler.List)
		}
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newWorkflow adapts the concrete gateway to the workflow's optional
// dependency: a nil *SnapGateway must stay a nil interface.
func newWorkflow(inquiries *repository.InquiryRepository, enrollments *repository.EnrollmentRepository, gateway *payment.SnapGateway, notifier *service.NotificationService, metrics *service.MetricsService, logr *zap.Logger) *service.EnrollmentService {
	if gateway == nil {
		return service.NewEnrollmentService(inquiries, enrollments, nil, notifier, metrics, logr)
	}
	return service.NewEnrollmentService(inquiries, enrollments, gateway, notifier, metrics, logr)
}
