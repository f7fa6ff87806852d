// main.go
package main

import (
	"context"
	"log"
	"time"

	"shareit/cmd"
	"shareit/internal/data/repository"
	"shareit/internal/usecase"
	"shareit/internal/wire"
	"shareit/pkg/database"
	"shareit/pkg/events"
	"shareit/pkg/lock"
	"shareit/pkg/metrics"
	"shareit/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		cancel()
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	cancel()
	logger.Info("Database connected successfully")

	metrics.Register()

	infra := usecase.Infra{
		Clock:     utils.SystemClock{},
		Locker:    newLocker(config, logger),
		Publisher: newPublisher(config, logger),
	}
	defer infra.Publisher.Close()

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, infra, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}

// newLocker prefers a Redis lease so several instances serialize item decisions.
func newLocker(config *utils.Config, logger *zap.Logger) lock.Locker {
	if config.Redis.Addr == "" {
		logger.Info("Redis not configured, using in-process item locks")
		return lock.NewLocalLocker()
	}

	client := lock.NewRedisClient(config.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, using in-process item locks",
			zap.String("addr", config.Redis.Addr), zap.Error(err))
		_ = client.Close()
		return lock.NewLocalLocker()
	}

	logger.Info("Using Redis item locks", zap.String("addr", config.Redis.Addr))
	return lock.NewRedisLocker(client, config.Booking.LockTTL, logger)
}

func newPublisher(config *utils.Config, logger *zap.Logger) events.Publisher {
	if len(config.Kafka.Brokers) == 0 {
		logger.Info("Kafka not configured, booking events disabled")
		return events.NopPublisher{}
	}
	logger.Info("Publishing booking events",
		zap.Strings("brokers", config.Kafka.Brokers),
		zap.String("topic", config.Kafka.Topic))
	return events.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Topic)
}
