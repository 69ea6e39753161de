package storage

import (
	"encoding/json"
	"strings"
	"time"
)

var nowFunc = time.Now

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime converts a loosely typed stored date into a time.Time. Strings
// in the common layouts and unix millisecond numbers are understood;
// anything else returns fallback, or now when fallback is zero.
func ParseTime(v any, fallback time.Time) time.Time {
	if t, ok := TryParseTime(v); ok {
		return t
	}
	if fallback.IsZero() {
		return nowFunc().UTC()
	}
	return fallback
}

// TryParseTime is ParseTime without the fallback.
func TryParseTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	case float64:
		if t > 0 {
			return time.UnixMilli(int64(t)).UTC(), true
		}
	case int64:
		if t > 0 {
			return time.UnixMilli(t).UTC(), true
		}
	case json.Number:
		if ms, err := t.Int64(); err == nil && ms > 0 {
			return time.UnixMilli(ms).UTC(), true
		}
	}
	return time.Time{}, false
}
