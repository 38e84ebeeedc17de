package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/pkg/logging"
)

// LLMCaller is the model client seen by the generation services; tests
// substitute their own.
type LLMCaller interface {
	Chat(ctx context.Context, messages []models.LLMMessage, override *ModelConfig) (string, error)
}

// LLMService talks to an OpenAI-compatible chat-completions endpoint. A
// circuit breaker keeps a dead endpoint from stalling every request: once
// open, calls fail immediately and the heuristic splitter takes over.
type LLMService struct {
	cfg     *config.Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewLLMService(cfg *config.Config) *LLMService {
	s := &LLMService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.LLMTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "llm",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logging.Logger.Warn("LLM circuit breaker state change",
					"breaker", name, "from", from.String(), "to", to.String())
			},
		}),
	}
	logging.Logger.Info("LLM client initialized",
		"base_url", cfg.LLMBaseURL,
		"model", cfg.LLMModel,
		"api_key", MaskAPIKey(cfg.LLMAPIKey),
	)
	return s
}

func (s *LLMService) Chat(ctx context.Context, messages []models.LLMMessage, override *ModelConfig) (string, error) {
	model := s.cfg.LLMModel
	temperature := s.cfg.LLMTemperature
	if override != nil {
		if override.Model != "" {
			model = override.Model
		}
		if override.Temperature > 0 {
			temperature = override.Temperature
		}
	}

	reqBody := models.LLMChatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   s.cfg.LLMMaxTokens,
		Temperature: temperature,
		Stream:      false,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.send(ctx, jsonData)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (s *LLMService) send(ctx context.Context, jsonData []byte) (string, error) {
	url := strings.TrimRight(s.cfg.LLMBaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	// request head
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.LLMAPIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.LLMAPIKey)
	}

	// send request
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logging.Logger.Error("error closing response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// get response
	var chatResp models.LLMChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("model error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
