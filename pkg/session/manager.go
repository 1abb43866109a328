package session

import (
	"context"
	"fmt"
	"sync"

	"socialhub/pkg/storage"
	"socialhub/pkg/user"

	"go.uber.org/zap"
)

//go:generate mockgen -source=manager.go -destination=mock_authenticator.go -package=session

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
}

// Manager keeps the single logged-in user under the currentUser key. The
// stored copy is not checked against the directory when it is read back.
type Manager struct {
	mu     *sync.Mutex
	store  *storage.Store
	users  Authenticator
	logger *zap.SugaredLogger
}

func NewManager(store *storage.Store, users Authenticator, logger *zap.SugaredLogger) *Manager {
	return &Manager{store: store, users: users, logger: logger, mu: &sync.Mutex{}}
}

func (sm *Manager) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := sm.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.store.Save(ctx, storage.KeyCurrentUser, user.NewRecord(u)); err != nil {
		return nil, err
	}

	sm.logger.Infow("logged in", "id", u.ID, "email", u.Email)
	return u, nil
}

func (sm *Manager) Logout(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if err := sm.store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return err
	}

	sm.logger.Info("logged out")
	return nil
}

// Current returns nil, nil when nobody is logged in.
func (sm *Manager) Current(ctx context.Context) (*user.User, error) {
	var r user.Record
	found, err := sm.store.LoadInto(ctx, storage.KeyCurrentUser, &r)
	if err != nil || !found {
		return nil, err
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorruptState, storage.KeyCurrentUser, err)
	}

	return r.User(), nil
}
