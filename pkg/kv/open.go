package kv

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/pkg/database"
)

// Open connects the driver selected by STORE_DRIVER and wraps it with
// Instrument. The caller releases it with kv.Close.
func Open(ctx context.Context) (Store, error) {
	driver := config.StoreDriver()
	s, err := open(ctx, driver)
	if err != nil {
		return nil, err
	}
	return Instrument(s, driver), nil
}

func open(ctx context.Context, driver string) (Store, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "redis":
		return DialRedis(ctx, config.RedisAddr(), config.RedisPassword())
	case "database":
		db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN())
		if err != nil {
			return nil, err
		}
		return NewDatabase(db)
	case "mongo":
		return DialMongo(ctx, config.MongoURI(), config.MongoDatabase(), config.MongoCollection())
	case "s3":
		return DialS3(ctx, S3Options{
			Bucket:   config.S3Bucket(),
			Region:   config.S3Region(),
			Key:      config.S3Key(),
			Secret:   config.S3Secret(),
			Endpoint: config.S3Endpoint(),
			Prefix:   config.S3Prefix(),
		})
	default:
		return nil, fmt.Errorf("kv: unsupported STORE_DRIVER %q (supported: memory, redis, database, mongo, s3)", driver)
	}
}
