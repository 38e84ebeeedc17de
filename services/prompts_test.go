package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirill778/flowchart/services"
)

// TestDefaultPrompts verifies that both defaults demand the parseable
// "Шаг N:" step format.
func TestDefaultPrompts(t *testing.T) {
	prompts := services.DefaultPrompts()
	assert.Contains(t, prompts.Generate, "Шаг 1:")
	assert.Contains(t, prompts.Chat, "Шаг 1:")
}

// TestLoadPrompts verifies YAML overrides: a file may replace one prompt and
// keep the default for the other.
func TestLoadPrompts(t *testing.T) {
	t.Run("empty path keeps defaults", func(t *testing.T) {
		prompts, err := services.LoadPrompts("")
		require.NoError(t, err)
		assert.Equal(t, services.DefaultPrompts(), prompts)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("generate: |\n  Свой промпт.\n  Шаг 1: формат тот же.\n"), 0o644))

		prompts, err := services.LoadPrompts(path)
		require.NoError(t, err)
		assert.Contains(t, prompts.Generate, "Свой промпт.")
		assert.Equal(t, services.DefaultPrompts().Chat, prompts.Chat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := services.LoadPrompts(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("generate: [unclosed"), 0o644))
		_, err := services.LoadPrompts(path)
		assert.Error(t, err)
	})
}
