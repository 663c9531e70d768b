// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/wardshift/internal/app/system/doccache"
	"github.com/dalemusser/wardshift/internal/app/system/indexes"
	"github.com/dalemusser/wardshift/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB dials MongoDB (required) and Redis (optional).
//
// A Redis that is configured but unreachable is logged and left in place:
// the cache degrades to misses and every read goes to Mongo.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	ctx, cancel := context.WithTimeout(ctx, appCfg.MongoConnectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(appCfg.MongoURI)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	cache := doccache.New(doccache.Options{
		Addr:     appCfg.RedisAddr,
		Password: appCfg.RedisPassword,
		DB:       appCfg.RedisDB,
		Prefix:   "wardshift:",
		TTL:      appCfg.CacheTTL,
	}, logger)
	if cache.Enabled() {
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("redis unreachable; document cache will miss until it returns",
				zap.String("redis_addr", appCfg.RedisAddr), zap.Error(err))
		} else {
			logger.Info("connected to Redis", zap.String("redis_addr", appCfg.RedisAddr))
		}
	}

	return DBDeps{
		WardMongoClient:   client,
		WardMongoDatabase: client.Database(appCfg.MongoDatabase),
		Cache:             cache,
	}, nil
}

// EnsureSchema creates the collections with their validators, then the
// indexes. Both steps are idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.WardMongoDatabase); err != nil {
		logger.Error("collection validators failed", zap.Error(err))
		return fmt.Errorf("validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, deps.WardMongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return fmt.Errorf("indexes: %w", err)
	}
	return nil
}
