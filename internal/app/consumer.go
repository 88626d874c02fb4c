package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pklapps/internal/events"
	"pklapps/internal/messaging/kafka/consumer"
	"pklapps/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer mendengarkan event presensi dan menggugurkan cache riwayat
// siswa yang bersangkutan.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.AttendanceRecordedTopic,
		GroupID:        "pklapps-history-invalidation",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeAttendanceRecorded(ctx, reader, redisClient, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
