package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotel-booking/internal/data/memory"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/auth"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/mq"
	"hotel-booking/pkg/payment"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

// runtime carries what every subcommand shares: config, logger and the
// storage behind the repositories.
type runtime struct {
	config *utils.Config
	logger *zap.Logger
	db     database.PgxIface // nil with memory storage
	repo   *repository.Repository

	closers []func()
}

func newRuntime() (*runtime, error) {
	config, err := utils.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}

	rt := &runtime{config: config, logger: logger}
	rt.onClose(func() { _ = logger.Sync() })
	return rt, nil
}

func (rt *runtime) onClose(fn func()) {
	rt.closers = append(rt.closers, fn)
}

// Close releases resources in reverse order of acquisition.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}

// openStorage connects the configured store and, when Redis is configured,
// puts the catalog lookups behind a read-through cache.
func (rt *runtime) openStorage(ctx context.Context) error {
	switch rt.config.App.Storage {
	case storageMemory:
		rt.repo = memory.NewRepository(memory.NewStore())
		rt.logger.Warn("Using in-memory storage, data is lost on exit")
	case storagePostgres, "":
		db, err := database.InitDB(ctx, rt.config.Database, rt.config.App.Name)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		rt.onClose(db.Close)
		rt.db = db
		rt.repo = repository.NewRepository(db, rt.logger)
		rt.logger.Info("Database connected successfully",
			zap.String("host", rt.config.Database.Host),
			zap.String("name", rt.config.Database.Name),
		)
	default:
		return fmt.Errorf("unknown STORAGE %q (want %s or %s)", rt.config.App.Storage, storagePostgres, storageMemory)
	}

	if rt.config.Redis.URL == "" {
		return nil
	}

	rdb, err := cache.NewRedis(ctx, rt.config.Redis.URL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	rt.onClose(func() { _ = rdb.Close() })

	rt.repo.Room = repository.NewCachedRoomRepository(rt.repo.Room, rdb, rt.config.Redis.CacheTTL, rt.logger)
	rt.repo.Hotel = repository.NewCachedHotelRepository(rt.repo.Hotel, rdb, rt.config.Redis.CacheTTL, rt.logger)
	rt.logger.Info("Catalog cache enabled", zap.Duration("ttl", rt.config.Redis.CacheTTL))
	return nil
}

func (rt *runtime) requirePostgres(command string) error {
	if rt.db == nil {
		return fmt.Errorf("%s needs postgres storage, STORAGE is %q", command, rt.config.App.Storage)
	}
	return nil
}

// migrate applies pending schema migrations. It is a no-op on memory storage.
func (rt *runtime) migrate(ctx context.Context) error {
	if rt.db == nil {
		return nil
	}
	applied, err := database.Migrate(ctx, rt.db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, v := range applied {
		rt.logger.Info("Applied migration", zap.String("version", v))
	}
	return nil
}

func (rt *runtime) publisher() usecase.EventPublisher {
	if rt.config.AMQP.URL == "" {
		return usecase.NopPublisher{}
	}

	pub, err := mq.NewPublisher(rt.config.AMQP.URL, rt.config.AMQP.Exchange)
	if err != nil {
		// Events are best effort, the service runs without a broker.
		rt.logger.Error("Failed to connect to message broker, events disabled", zap.Error(err))
		return usecase.NopPublisher{}
	}
	rt.onClose(func() { _ = pub.Close() })
	rt.logger.Info("Publishing events", zap.String("exchange", rt.config.AMQP.Exchange))
	return pub
}

func (rt *runtime) gateway() (payment.Gateway, error) {
	switch rt.config.Payment.Provider {
	case "omise":
		gw, err := payment.NewOmiseGateway(rt.config.Payment.OmisePublicKey, rt.config.Payment.OmiseSecretKey, rt.logger)
		if err != nil {
			return nil, err
		}
		return gw, nil
	case "simulated", "":
		rt.logger.Warn("Using simulated payment gateway")
		return payment.NewSimulatedGateway(rt.config.Payment.SimulatedDelay), nil
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", rt.config.Payment.Provider)
	}
}

func (rt *runtime) tokens() (*auth.TokenManager, error) {
	ttl := time.Duration(rt.config.JWT.ExpiryHours) * time.Hour
	tm, err := auth.NewTokenManager(rt.config.JWT.Secret, ttl)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}
	return tm, nil
}
