package cache

import (
	"time"

	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/platform/redis"
)

// Service layers the in-process cache over an optional Redis L2. Without
// Redis the service degrades to memory-only, which is enough for a single
// replica: all state here is ephemeral by contract.
type Service struct {
	l1 *L1CacheService
	l2 *redis.Service
}

func NewCacheService(l1 *L1CacheService, l2 *redis.Service) CacheService {
	return &Service{l1: l1, l2: l2}
}

func (cs *Service) GetCache(key string) (interface{}, bool) {
	if data, ok := cs.l1.Get(key); ok {
		return data, ok
	}
	if cs.l2 == nil {
		return nil, false
	}
	if data, ok := cs.l2.GetCache(key); ok {
		return data, ok
	}
	return nil, false
}

func (cs *Service) SetCache(key string, value interface{}, expiration time.Duration) error {
	if cs.l2 != nil {
		if err := cs.l2.SetCache(key, value, expiration); err != nil {
			logging.Logger.Error("l2 fail SetCache", "key", key, "error", err)
			return err
		}
		// keep L1 short so other replicas don't read stale sessions for long
		cs.l1.Set(key, value, time.Duration(float64(expiration)*0.3))
		return nil
	}
	cs.l1.Set(key, value, expiration)
	return nil
}

func (cs *Service) DelCache(key string) error {
	cs.l1.Del(key)
	if cs.l2 == nil {
		return nil
	}
	if err := cs.l2.DelCache(key); err != nil {
		logging.Logger.Error("l2 fail DelCache", "key", key, "error", err)
		return err
	}
	return nil
}
