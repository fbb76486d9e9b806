package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/phillip/hostel-fest-payments/store"
)

// OpenPersister connects the configured backend. The returned func releases it.
func OpenPersister(ctx context.Context, cfg *Config, log *slog.Logger) (store.Persister, func(), error) {
	noop := func() {}
	switch cfg.StoreBackend {
	case BackendMemory:
		return store.NewMemoryPersister(), noop, nil

	case BackendMongo:
		if err := ConnectMongo(ctx, cfg); err != nil {
			return nil, noop, err
		}
		log.Info("connected to MongoDB", "db", cfg.DBName)
		return store.NewMongoPersister(cfg.MongoClient, cfg.DBName, "store_documents"), func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = cfg.MongoClient.Disconnect(ctx)
		}, nil

	case BackendPostgres:
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info("connected to Postgres")
		pg, err := store.NewPostgresPersister(db)
		if err != nil {
			return nil, noop, err
		}
		return pg, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil

	default:
		log.Info("using file store", "dir", cfg.DataDir)
		return store.NewFilePersister(cfg.DataDir), noop, nil
	}
}

// ConnectMongo dials MONGO_URI and pings it, storing the client on cfg.
func ConnectMongo(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}
	cfg.MongoClient = client
	return nil
}
