package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

// TestModelConfigRoundTrip verifies set, get and delete of a per-session
// override.
func TestModelConfigRoundTrip(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	assert.Nil(t, ts.modelConfig.GetOrDefault(ctx, "s1"), "no override means defaults")

	err := ts.modelConfig.SetSessionModelConfig(ctx, "s1", &services.ModelConfig{Model: "mistral", Temperature: 1.1})
	require.NoError(t, err)

	got := ts.modelConfig.GetOrDefault(ctx, "s1")
	require.NotNil(t, got)
	assert.Equal(t, "mistral", got.Model)
	assert.InDelta(t, 1.1, got.Temperature, 1e-9)
	assert.Equal(t, "s1", got.SessionID)

	assert.Nil(t, ts.modelConfig.GetOrDefault(ctx, "s2"), "overrides are per session")

	require.NoError(t, ts.modelConfig.DeleteSessionModelConfig(ctx, "s1"))
	assert.Nil(t, ts.modelConfig.GetOrDefault(ctx, "s1"))
}

// TestModelConfigValidation verifies the rejection cases.
func TestModelConfigValidation(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		sessionID string
		config    *services.ModelConfig
	}{
		{"empty session id", "", &services.ModelConfig{Model: "m"}},
		{"empty config", "s1", &services.ModelConfig{}},
		{"temperature too high", "s1", &services.ModelConfig{Model: "m", Temperature: 2.5}},
		{"temperature negative", "s1", &services.ModelConfig{Model: "m", Temperature: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ts.modelConfig.SetSessionModelConfig(ctx, tt.sessionID, tt.config))
		})
	}

	assert.Error(t, ts.modelConfig.DeleteSessionModelConfig(ctx, ""))
}

// TestModelConfigFlowsIntoGeneration verifies that a stored override reaches
// the model client on generate.
func TestModelConfigFlowsIntoGeneration(t *testing.T) {
	ts := newTestStack(t)
	ctx := context.Background()
	sessionID := ts.newSession(t)
	ts.llm.reply = "Шаг 1: х"

	require.NoError(t, ts.modelConfig.SetSessionModelConfig(ctx, sessionID, &services.ModelConfig{Model: "mistral"}))

	_, _, err := ts.generate.Generate(ctx, sessionID, "текст", models.DirectionVertical)
	require.NoError(t, err)

	require.NotNil(t, ts.llm.override)
	assert.Equal(t, "mistral", ts.llm.override.Model)
}

// TestMaskAPIKey verifies the logging mask.
func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "***", services.MaskAPIKey(""))
	assert.Equal(t, "***", services.MaskAPIKey("short"))
	assert.Equal(t, "sk-a***wxyz", services.MaskAPIKey("sk-abcdefgh-stuvwxyz"))
}
