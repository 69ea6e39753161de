package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	fixedNow := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	nowFunc = func() time.Time { return fixedNow }
	defer func() { nowFunc = time.Now }()

	fallback := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       any
		fallback time.Time
		want     time.Time
	}{
		{"rfc3339", "2024-03-15T08:00:00Z", fallback, want},
		{"js toJSON", "2024-03-15T08:00:00.000Z", fallback, want},
		{"space layout", "2024-03-15 08:00:00", fallback, want},
		{"date only", "2024-03-15", fallback, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"unix millis float", float64(want.UnixMilli()), fallback, want},
		{"unix millis int64", want.UnixMilli(), fallback, want},
		{"json number", json.Number("1710489600000"), fallback, want},
		{"time value", want, fallback, want},
		{"garbage string", "yesterday-ish", fallback, fallback},
		{"nil", nil, fallback, fallback},
		{"zero time", time.Time{}, fallback, fallback},
		{"negative number", float64(-5), fallback, fallback},
		{"bool", true, fallback, fallback},
		{"nil without fallback", nil, time.Time{}, fixedNow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTime(tt.in, tt.fallback)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestTryParseTime(t *testing.T) {
	got, ok := TryParseTime("2024-03-15T08:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, 2024, got.Year())

	_, ok = TryParseTime("not a date")
	assert.False(t, ok)

	_, ok = TryParseTime(nil)
	assert.False(t, ok)
}
