package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/platform/cache"
)

// ModelConfig is a per-session override of the configured model defaults.
type ModelConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	SessionID   string  `json:"session_id"`
}

// ModelConfigService keeps per-session model overrides in the cache with
// their own TTL; a session without an override uses the config defaults.
type ModelConfigService struct {
	typedCache *cache.TypedCache[ModelConfig]
	cacheTTL   time.Duration
}

func NewModelConfigService(cacheService cache.CacheService) *ModelConfigService {
	return &ModelConfigService{
		typedCache: cache.NewTypedCache[ModelConfig](cacheService),
		cacheTTL:   30 * time.Minute,
	}
}

func (s *ModelConfigService) SetSessionModelConfig(ctx context.Context, sessionID string, config *ModelConfig) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	if config.Model == "" && config.Temperature == 0 {
		return fmt.Errorf("model config is empty")
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}

	config.SessionID = sessionID
	return s.typedCache.Set(s.getCacheKey(sessionID), *config, s.cacheTTL)
}

// GetOrDefault returns the session override when one is cached, otherwise
// nil, meaning the configured defaults apply.
func (s *ModelConfigService) GetOrDefault(ctx context.Context, sessionID string) *ModelConfig {
	config, exists, err := s.typedCache.Get(s.getCacheKey(sessionID))
	if err != nil {
		logging.Logger.Error("fail GetOrDefault", "error", err, "session", sessionID)
		return nil
	}
	if !exists {
		return nil
	}
	return &config
}

func (s *ModelConfigService) DeleteSessionModelConfig(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	return s.typedCache.Delete(s.getCacheKey(sessionID))
}

func (s *ModelConfigService) getCacheKey(sessionID string) string {
	return fmt.Sprintf("model_config:session:%s", sessionID)
}

// MaskAPIKey hides most of a key for logging.
func MaskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "***"
	}
	return apiKey[:4] + "***" + apiKey[len(apiKey)-4:]
}
