// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	environmentsstore "github.com/dalemusser/frontenv/internal/app/store/environments"
	"github.com/dalemusser/frontenv/internal/app/system/indexes"
	"github.com/dalemusser/frontenv/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the descriptor store. Without a Mongo URI it returns an
// in-memory store and no client.
//
// Configured timeouts are applied here, since WAFFLE runs ConnectDB and
// EnsureSchema before Startup. Connect and ping are bounded by the core
// db_connect_timeout when it is set.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	applyTimeouts(appCfg, logger)

	if !appCfg.UsesMongo() {
		logger.Info("no mongo_uri configured; keeping descriptors in memory")
		return DBDeps{Environments: environmentsstore.NewMemory()}, nil
	}

	if coreCfg != nil && coreCfg.DBConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, coreCfg.DBConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Environments:  environmentsstore.NewMongo(db),
	}, nil
}

// EnsureSchema creates the environments indexes when MongoDB is in use.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Startup())
	defer cancel()

	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
