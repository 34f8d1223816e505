// File: fieldops/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldops/config"
	"fieldops/cron"
	"fieldops/database"
	availabilityRepo "fieldops/database/repository/availability"
	jobRepo "fieldops/database/repository/job"
	proposalRepo "fieldops/database/repository/proposal"
	providerRepo "fieldops/database/repository/provider"
	workerRepo "fieldops/database/repository/worker"
	"fieldops/handlers"
	"fieldops/middleware"
	"fieldops/routes"
	"fieldops/services/notification"
	"fieldops/services/scheduling"
	"fieldops/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	workers := workerRepo.NewMongoWorkerRepo()
	providers := providerRepo.NewMongoProviderRepo()
	availability := availabilityRepo.NewMongoAvailabilityRepo()
	jobs := jobRepo.NewMongoJobRepo()
	proposals := proposalRepo.NewMongoProposalRepo()

	if repo, ok := proposals.(*proposalRepo.MongoProposalRepo); ok {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure proposal indexes: %v", err)
		}
	}

	// services.
	notificationService := &notification.LogNotificationService{}
	schedulingService := &scheduling.DefaultSchedulingService{
		Workers:      workers,
		Providers:    providers,
		Availability: availability,
		Jobs:         jobs,
		Proposals:    proposals,
		Locks:        utils.NewRedisRunLock(utils.GetLockClient()),
		Cache:        utils.GetCacheClient(),
		Notifier:     notificationService,
	}

	scheduleHandler := handlers.NewScheduleHandler(schedulingService, logger)
	workerHandler := handlers.NewWorkerHandler(workers, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availability, logger)

	// Register routes.
	routes.RegisterRoutes(router, scheduleHandler, workerHandler, availabilityHandler)

	// Background reviewer reminders for stale pending proposals.
	cron.InitProposalReminderWorker(proposals, notificationService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
