package bootstrap

import (
	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/platform/cache"
	"github.com/kirill778/flowchart/platform/events"
	"github.com/kirill778/flowchart/platform/redis"
	"github.com/kirill778/flowchart/platform/storage"
)

type Infrastructure struct {
	Redis          *redis.Service   // nil without REDIS_URL
	Storage        *storage.Service // nil without STORAGE_TYPE
	Cache          cache.CacheService
	EventPublisher events.Publisher
}

func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	// redis is optional: without it sessions live in process memory only
	// and events stay in-process
	if cfg.RedisURL != "" {
		redisService, err := redis.InitRedis(cfg)
		if err != nil {
			logging.Logger.Error("fail Initializing Redis", "error", err)
			return nil, err
		}
		infra.Redis = redisService
	}

	// storage is optional: it only backs the share endpoint
	if cfg.StorageType != "" {
		storageService, err := storage.InitStorageService(cfg)
		if err != nil {
			logging.Logger.Error("fail Initializing Bucket", "error", err)
			return nil, err
		}
		infra.Storage = storageService
	}

	// cache
	l1CacheService := cache.InitL1Cache()
	infra.Cache = cache.NewCacheService(l1CacheService, infra.Redis)

	// event publisher
	if infra.Redis != nil {
		infra.EventPublisher = events.NewEventPublisher(infra.Redis.Rdb)
	} else {
		infra.EventPublisher = events.NewMemoryPublisher()
	}

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if infra.Redis != nil {
		if err := infra.Redis.Rdb.Close(); err != nil {
			logging.Logger.Error("fail closing redis", "error", err)
			return err
		}
	}
	return nil
}
