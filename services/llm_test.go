package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

func llmTestConfig(baseURL string) *config.Config {
	return &config.Config{
		LLMBaseURL:     baseURL,
		LLMModel:       "llama3",
		LLMAPIKey:      "secret-key",
		LLMTimeout:     5 * time.Second,
		LLMMaxTokens:   512,
		LLMTemperature: 0.7,
	}
}

func chatCompletionsReply(content string) string {
	quoted, _ := json.Marshal(content)
	return `{"choices":[{"message":{"role":"assistant","content":` + string(quoted) + `}}]}`
}

// TestLLMChatRequestShape verifies the chat-completions request: path,
// headers and body, plus trimming of the reply.
func TestLLMChatRequestShape(t *testing.T) {
	var gotReq models.LLMChatRequest
	var gotPath, gotAuth, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionsReply("  Шаг 1: готово  ")))
	}))
	defer srv.Close()

	// trailing slash must not double up in the URL
	llm := services.NewLLMService(llmTestConfig(srv.URL + "/v1/"))
	messages := []models.LLMMessage{
		{Role: models.RoleSystem, Content: "системный промпт"},
		{Role: models.RoleUser, Content: "вопрос"},
	}

	reply, err := llm.Chat(context.Background(), messages, nil)
	require.NoError(t, err)
	assert.Equal(t, "Шаг 1: готово", reply)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "llama3", gotReq.Model)
	assert.Equal(t, 512, gotReq.MaxTokens)
	assert.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, messages, gotReq.Messages)
}

// TestLLMChatOverride verifies that a per-session model config replaces the
// defaults in the request body.
func TestLLMChatOverride(t *testing.T) {
	var gotReq models.LLMChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(chatCompletionsReply("ок")))
	}))
	defer srv.Close()

	llm := services.NewLLMService(llmTestConfig(srv.URL))
	override := &services.ModelConfig{Model: "mistral", Temperature: 1.2}
	_, err := llm.Chat(context.Background(), []models.LLMMessage{{Role: models.RoleUser, Content: "x"}}, override)
	require.NoError(t, err)

	assert.Equal(t, "mistral", gotReq.Model)
	assert.InDelta(t, 1.2, gotReq.Temperature, 1e-9)
}

// TestLLMChatNoKeyNoAuthHeader verifies that the Authorization header is
// omitted for keyless local endpoints.
func TestLLMChatNoKeyNoAuthHeader(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(chatCompletionsReply("ок")))
	}))
	defer srv.Close()

	cfg := llmTestConfig(srv.URL)
	cfg.LLMAPIKey = ""
	llm := services.NewLLMService(cfg)

	_, err := llm.Chat(context.Background(), []models.LLMMessage{{Role: models.RoleUser, Content: "x"}}, nil)
	require.NoError(t, err)
	assert.False(t, sawAuth)
}

// TestLLMChatErrorResponses verifies the three failure shapes: non-200
// status, an error payload and an empty choices list.
func TestLLMChatErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "http error with body excerpt",
			status:  http.StatusInternalServerError,
			body:    "upstream exploded",
			wantErr: "model endpoint returned 500",
		},
		{
			name:    "error payload",
			status:  http.StatusOK,
			body:    `{"error":{"message":"bad prompt","type":"invalid_request_error"}}`,
			wantErr: "model error: bad prompt",
		},
		{
			name:    "empty choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: "no response from model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			llm := services.NewLLMService(llmTestConfig(srv.URL))
			_, err := llm.Chat(context.Background(), []models.LLMMessage{{Role: models.RoleUser, Content: "x"}}, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestLLMChatBreakerOpens verifies that repeated failures trip the breaker
// and later calls fail fast without touching the endpoint.
func TestLLMChatBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	llm := services.NewLLMService(llmTestConfig(srv.URL))
	messages := []models.LLMMessage{{Role: models.RoleUser, Content: "x"}}

	for i := 0; i < 4; i++ {
		_, err := llm.Chat(context.Background(), messages, nil)
		require.Error(t, err)
	}
	assert.EqualValues(t, 4, hits.Load())

	_, err := llm.Chat(context.Background(), messages, nil)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.EqualValues(t, 4, hits.Load(), "open breaker must not reach the endpoint")
}
