// Package storage persists whole-collection JSON blobs under a fixed set of
// keys. A Store never writes partially: every Save replaces the value stored
// under its key.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
	KeyPosts       = "socialmedia_posts"
	KeyTheme       = "theme"
)

var (
	// ErrStorage is returned when a value cannot be serialized or the
	// backend refuses a read or a write.
	ErrStorage = errors.New("storage error")
	// ErrCorruptState is returned when a stored value is not the shape its
	// consumer expects.
	ErrCorruptState = errors.New("corrupt stored state")
)

//go:generate mockgen -source=storage.go -destination=mock_backend.go -package=storage

// Backend is a raw key-value store. Get returns nil, nil for a missing key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Store struct {
	backend Backend
	logger  *zap.SugaredLogger
}

func NewStore(backend Backend, logger *zap.SugaredLogger) *Store {
	return &Store{backend: backend, logger: logger}
}

// Load returns the raw JSON stored under key. found is false when nothing
// is stored.
func (s *Store) Load(ctx context.Context, key string) (value json.RawMessage, found bool, err error) {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: load %s: %v", ErrStorage, key, err)
	}

	if data == nil {
		return nil, false, nil
	}

	if !json.Valid(data) {
		return nil, false, fmt.Errorf("%w: %s is not valid json", ErrCorruptState, key)
	}

	return json.RawMessage(data), true, nil
}

// LoadInto decodes the value stored under key into v.
func (s *Store) LoadInto(ctx context.Context, key string, v interface{}) (bool, error) {
	raw, found, err := s.Load(ctx, key)
	if err != nil || !found {
		return found, err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", ErrCorruptState, key, err)
	}

	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, key, err)
	}

	if err := s.backend.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrStorage, key, err)
	}

	s.logger.Debugw("saved", "key", key, "bytes", len(data))
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: remove %s: %v", ErrStorage, key, err)
	}

	s.logger.Debugw("removed", "key", key)
	return nil
}
