package cache

import "time"

// CacheService is the session store contract. The L1 layer is always an
// in-process cache; an L2 layer (Redis) is attached when configured.
type CacheService interface {
	GetCache(key string) (interface{}, bool)
	SetCache(key string, value interface{}, expiration time.Duration) error
	DelCache(key string) error
}
