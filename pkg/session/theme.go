package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"socialhub/pkg/storage"

	"go.uber.org/zap"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("invalid theme")

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	}
	return "", ErrInvalidTheme
}

// ThemeStore persists the theme flag. A missing value means Light.
type ThemeStore struct {
	mu     *sync.Mutex
	store  *storage.Store
	logger *zap.SugaredLogger
}

func NewThemeStore(store *storage.Store, logger *zap.SugaredLogger) *ThemeStore {
	return &ThemeStore{store: store, logger: logger, mu: &sync.Mutex{}}
}

func (ts *ThemeStore) Get(ctx context.Context) (Theme, error) {
	var s string
	found, err := ts.store.LoadInto(ctx, storage.KeyTheme, &s)
	if err != nil {
		return "", err
	}
	if !found {
		return Light, nil
	}

	t, err := ParseTheme(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %q", storage.ErrCorruptState, storage.KeyTheme, s)
	}
	return t, nil
}

func (ts *ThemeStore) Set(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.save(ctx, t)
}

// Toggle flips between light and dark and returns the new theme.
func (ts *ThemeStore) Toggle(ctx context.Context) (Theme, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	cur, err := ts.Get(ctx)
	if err != nil {
		return "", err
	}

	next := Dark
	if cur == Dark {
		next = Light
	}
	if err := ts.save(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (ts *ThemeStore) save(ctx context.Context, t Theme) error {
	if err := ts.store.Save(ctx, storage.KeyTheme, string(t)); err != nil {
		return err
	}

	ts.logger.Infow("theme changed", "theme", t)
	return nil
}
