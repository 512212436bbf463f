package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"playbeat/internal/logging"
)

// Backend stores raw values by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// KV encodes values as JSON on top of a Backend.
type KV struct {
	backend Backend
	logger  *slog.Logger
}

// New wraps backend. A nil logger discards read diagnostics.
func New(backend Backend, logger *slog.Logger) *KV {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &KV{backend: backend, logger: logger.With(logging.String("component", "store"))}
}

// Backend exposes the underlying raw backend.
func (kv *KV) Backend() Backend {
	return kv.backend
}

// Save serializes value as JSON and stores it under key.
func (kv *KV) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.backend.Put(ensureContext(ctx), key, payload); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	if err := kv.backend.Delete(ensureContext(ctx), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys beginning with prefix in lexical order.
func (kv *KV) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := kv.backend.Keys(ensureContext(ctx), prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	return keys, nil
}

// Close releases the backend.
func (kv *KV) Close() error {
	if kv == nil || kv.backend == nil {
		return nil
	}
	return kv.backend.Close()
}

// Load decodes the value stored under key into a T. It returns def when the
// key is absent, holds JSON null, fails to decode, or cannot be read.
func Load[T any](ctx context.Context, kv *KV, key string, def T) T {
	raw, ok, err := kv.backend.Get(ensureContext(ctx), key)
	if err != nil {
		kv.logger.Debug("store read failed; using default",
			logging.String("key", key),
			logging.Error(err),
		)
		return def
	}
	if !ok {
		return def
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return def
	}
	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		kv.logger.Debug("stored value undecodable; using default",
			logging.String("key", key),
			logging.Error(err),
		)
		return def
	}
	return out
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
