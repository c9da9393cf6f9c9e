package initializers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kariqs/amexan-storefront/configs"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectToStorage opens the state backend named by storage.driver. The
// returned close func releases its connections.
func ConnectToStorage(ctx context.Context, cfg configs.Config, log *slog.Logger) (storage.Storage, func() error, error) {
	switch cfg.Storage.Driver {
	case "mysql":
		db, err := ConnectToDB(cfg.Storage.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn, err := openGormStorage(db)
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to mysql state store")
		return store, closeFn, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("connected to redis state store", "addr", cfg.Storage.RedisAddr)
		return storage.NewRedisStorage(rdb, cfg.Storage.RedisPrefix), rdb.Close, nil

	default:
		log.Info("using in-memory state store")
		return storage.NewMemoryStorage(), func() error { return nil }, nil
	}
}

// openGormStorage migrates the state table and wraps db. The pool is closed
// when migration fails.
func openGormStorage(db *gorm.DB) (storage.Storage, func() error, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := SyncDatabase(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return storage.NewGormStorage(db), sqlDB.Close, nil
}

func ConnectToDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		if db != nil {
			if sqlDB, derr := db.DB(); derr == nil {
				_ = sqlDB.Close()
			}
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
