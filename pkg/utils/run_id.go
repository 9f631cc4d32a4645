package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID creates a standardized, human-readable run identifier.
// Format: {kind}-{yyyymmddTHHMM}-{8charHexUUID}
//
// Example:
//   - Input: kind="plan"
//   - Output: "plan-20251110T0630-a3f8e2b1"
//
// The timestamp keeps history listings readable while the UUID suffix
// keeps IDs globally unique.
func GenerateRunID(kind string, at time.Time) string {
	return kind + "-" + at.UTC().Format("20060102T1504") + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
