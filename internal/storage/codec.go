package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"sutra-be/internal/logger"

	"go.uber.org/zap"
)

// Load reads and decodes the JSON value stored at key. A missing key,
// malformed JSON, a JSON null or a shape mismatch yield def, the latter
// logged at warn. A failing backend is returned as an error so callers never
// overwrite data they could not read.
func Load[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	raw, ok, err := LoadRaw(ctx, s, key)
	if err != nil || !ok {
		return def, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.FromCtx(ctx).Warn("stored value does not decode, using default",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
		return def, nil
	}
	return out, nil
}

// LoadRaw returns the stored bytes when present and not JSON null. err is
// set only when the backend itself failed.
func LoadRaw(ctx context.Context, s Store, key string) ([]byte, bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("store read failed",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	return trimmed, true, nil
}

// Save encodes value as JSON and overwrites whatever is stored at key.
func Save(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
