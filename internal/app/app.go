package app

import (
	"context"
	"os"
	"time"

	"pklapps/internal/middleware"
	"pklapps/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp menyambungkan infrastruktur dan mendaftarkan seluruh modul.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	tz, err := time.LoadLocation(appTimezone())
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(context.Background(), router, gormDB, redisClient, tz)
}

// appTimezone menentukan zona waktu "hari presensi". Default WIB karena
// seluruh sekolah pengguna ada di zona itu.
func appTimezone() string {
	if tz := os.Getenv("APP_TIMEZONE"); tz != "" {
		return tz
	}
	return "Asia/Jakarta"
}
