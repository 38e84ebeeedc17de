package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var formatPattern = regexp.MustCompile(`[^a-z0-9]`)

// ExportKeyGenerator produces object keys for rendered diagram exports.
// Keys are sharded by date so buckets stay browsable as exports pile up.
type ExportKeyGenerator struct {
	prefix string
}

func NewExportKeyGenerator(prefix string) *ExportKeyGenerator {
	return &ExportKeyGenerator{prefix: prefix}
}

// GenerateExportKey returns a key like exports/2026/08/21/1a2b3c4d_9f0e1d2c.svg.
// The session fragment keeps exports of one session adjacent within a day.
func (ekg *ExportKeyGenerator) GenerateExportKey(sessionID, format string) string {
	now := time.Now()
	year := now.Format("2006")
	month := now.Format("01")
	day := now.Format("02")

	uid := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	sess := sanitizeSessionFragment(sessionID)
	ext := sanitizeFormat(format)

	return fmt.Sprintf("%s/%s/%s/%s/%s_%s.%s", ekg.prefix, year, month, day, uid, sess, ext)
}

func sanitizeSessionFragment(sessionID string) string {
	s := strings.ReplaceAll(sessionID, "-", "")
	s = formatPattern.ReplaceAllString(strings.ToLower(s), "")
	if s == "" {
		return "anon"
	}
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

func sanitizeFormat(format string) string {
	f := formatPattern.ReplaceAllString(strings.ToLower(format), "")
	if f == "" {
		return "bin"
	}
	return f
}
