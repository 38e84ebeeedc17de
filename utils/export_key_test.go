package utils_test

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kirill778/flowchart/utils"
)

// TestGenerateExportKey verifies the date-sharded key shape and that two
// keys for one session never collide.
func TestGenerateExportKey(t *testing.T) {
	gen := utils.NewExportKeyGenerator("exports")
	sessionID := uuid.New().String()

	key := gen.GenerateExportKey(sessionID, "svg")
	assert.Regexp(t, regexp.MustCompile(`^exports/\d{4}/\d{2}/\d{2}/[0-9a-f]{8}_[0-9a-f]{8}\.svg$`), key)

	other := gen.GenerateExportKey(sessionID, "svg")
	assert.NotEqual(t, key, other)
}

// TestGenerateExportKeySanitizes verifies the session and format fragments
// are cleaned up or defaulted.
func TestGenerateExportKeySanitizes(t *testing.T) {
	gen := utils.NewExportKeyGenerator("exports")

	key := gen.GenerateExportKey("", "../../evil/../SVG!")
	assert.Regexp(t, regexp.MustCompile(`^exports/\d{4}/\d{2}/\d{2}/[0-9a-f]{8}_anon\.evilsvg$`), key)

	key = gen.GenerateExportKey("ABC-def-123", "")
	assert.Regexp(t, regexp.MustCompile(`_abcdef12\.bin$`), key)
}
