package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 123*int(time.Millisecond), time.UTC)

	t.Run("Format", func(t *testing.T) {
		id := GenerateOrderNumber(now)
		// Expected format: SUTRA-YYYYMMDD-HHMMSS-mmm-RRRR

		assert.True(t, strings.HasPrefix(id, "SUTRA-20240315-103000-123-"))

		parts := strings.Split(id, "-")
		if assert.Len(t, parts, 5, "Should have 5 parts separated by hyphens") {
			assert.Equal(t, "SUTRA", parts[0])
			assert.Len(t, parts[1], 8, "Date part YYYYMMDD should be 8 chars")
			assert.Len(t, parts[2], 6, "Time part HHMMSS should be 6 chars")
			assert.Len(t, parts[3], 3, "Milliseconds part should be 3 chars")
			assert.Len(t, parts[4], 4, "Random part should be 4 chars")
		}
	})

	t.Run("NonUTCInput", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		id := GenerateOrderNumber(now.In(ist))
		assert.True(t, strings.HasPrefix(id, "SUTRA-20240315-103000-"))
	})
}
