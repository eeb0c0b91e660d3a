package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/controllers"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/database"
	applogger "github.com/iammarkzubarkusa-prog/wing-way-connect/logger"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/middleware"
	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/routes"
	servicepkg "github.com/iammarkzubarkusa-prog/wing-way-connect/services"
)

const serviceName = "wingway-cargo"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Optional CloudWatch log sink
	var cwWriter io.Writer
	if cwClient, cwErr := aws_pkg.NewCloudWatchLogsClient(context.Background(), serviceName); cwErr == nil && cwClient.IsEnabled() {
		cwWriter = cwClient
	}

	logger, err := applogger.New(cfg.Env, cwWriter)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := database.Connect(cfg.DatabaseConfig()); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	// AWS clients
	var snsClient aws_pkg.SNSPublisher
	if awsCfg, awsErr := aws_pkg.LoadAWSConfig(context.Background()); awsErr != nil {
		logger.Warn("AWS config unavailable, SNS disabled", zap.Error(awsErr))
	} else {
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	}

	var metricsClient *aws_pkg.MetricsClient
	if mc, mcErr := aws_pkg.NewMetricsClient(context.Background()); mcErr != nil {
		logger.Warn("CloudWatch metrics unavailable", zap.Error(mcErr))
	} else {
		metricsClient = mc
	}

	// DI chain
	shipmentRepo := repository.NewGormShipmentRepository(database.DB)
	flightRepo := repository.NewGormFlightRepository(database.DB)
	scanService := servicepkg.NewScanService(shipmentRepo, snsClient, cfg.SNSTopicARN, logger)
	trackingService := servicepkg.NewTrackingService(shipmentRepo, flightRepo, logger)
	bookingService := servicepkg.NewBookingService(shipmentRepo, flightRepo, snsClient, cfg.SNSTopicARN, logger)

	scanController := controllers.NewScanController(scanService)
	trackingController := controllers.NewTrackingController(trackingService)
	bookingController := controllers.NewBookingController(bookingService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MetricsMiddleware(metricsClient, serviceName))

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})

	routes.Register(r, scanController, trackingController, bookingController, metricsClient, serviceName)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Cargo service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down cargo service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
