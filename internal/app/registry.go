package app

import (
	"context"
	"time"

	"pklapps/internal/attendance"
	"pklapps/internal/location"
	"pklapps/internal/messaging/kafka"
	"pklapps/internal/shared/txn"
	"pklapps/internal/shared/verlock"
	"pklapps/internal/student"
	"pklapps/internal/timewindow"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	tz *time.Location,
) error {
	// --- Shared primitives ---
	runner := txn.NewRunner(gormDB,
		txn.WithRecorder(txn.NewPrometheusRecorder(prometheus.DefaultRegisterer)),
	)
	configStore := verlock.NewStore(gormDB, func() *timewindow.Config {
		return &timewindow.Config{}
	})

	// --- Repositories ---
	studentRepo := student.NewRepository(gormDB)
	locationRepo := location.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	timewindowRepo := timewindow.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	timewindowService := timewindow.NewService(runner, timewindowRepo, configStore, rdb)
	attendanceService := attendance.NewService(
		runner,
		studentRepo,
		locationRepo,
		attendanceRepo,
		attendance.WithOutbox(outboxRepo),
		attendance.WithWindowReader(timewindowService),
		attendance.WithInvalidator(attendance.NewRedisInvalidator(rdb)),
		attendance.WithTimezone(tz),
	)

	if err := timewindowService.EnsureDefault(ctx); err != nil {
		return err
	}

	// --- Handlers ---
	attendanceHandler := attendance.NewHandlerWithRedis(attendanceService, rdb)
	timewindowHandler := timewindow.NewHandler(timewindowService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		timewindow.RegisterRoutes(api, timewindowHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return nil
}
