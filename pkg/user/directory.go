package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"socialhub/pkg/common"
	"socialhub/pkg/storage"

	"go.uber.org/zap"
)

const MinPasswordLength = 4

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Msg
}

// Directory owns the users collection. It reads the collection from
// storage on every call, so writes made by another process sharing the
// backend are picked up (last write wins).
type Directory struct {
	mu     *sync.Mutex
	store  *storage.Store
	now    func() time.Time
	logger *zap.SugaredLogger
}

func NewDirectory(store *storage.Store, logger *zap.SugaredLogger) *Directory {
	return &Directory{store: store, logger: logger, now: time.Now, mu: &sync.Mutex{}}
}

func (d *Directory) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if err := required("name", name); err != nil {
		return nil, err
	}
	if err := required("email", email); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, &ValidationError{Field: "password",
			Msg: fmt.Sprintf("must be at least %d characters long", MinPasswordLength)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, u := range users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	u := &User{ID: common.NextID(d.now(), maxID), Name: name, Email: email, Password: password}
	users = append(users, u)
	if err := d.save(ctx, users); err != nil {
		return nil, err
	}

	d.logger.Infow("user registered", "id", u.ID, "email", u.Email)
	return u.clone(), nil
}

// Authenticate returns the user whose email and password both match
// exactly.
func (d *Directory) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if err := required("email", email); err != nil {
		return nil, err
	}
	if err := required("password", password); err != nil {
		return nil, err
	}

	users, err := d.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u.clone(), nil
		}
	}

	return nil, ErrInvalidCredentials
}

func (d *Directory) load(ctx context.Context) ([]*User, error) {
	var records []Record
	found, err := d.store.LoadInto(ctx, storage.KeyUsers, &records)
	if err != nil {
		return nil, err
	}

	users := make([]*User, 0, len(records)+1)
	if !found {
		return users, nil
	}

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: users[%d]: %v", storage.ErrCorruptState, i, err)
		}
		users = append(users, r.User())
	}

	return users, nil
}

func (d *Directory) save(ctx context.Context, users []*User) error {
	records := make([]Record, 0, len(users))
	for _, u := range users {
		records = append(records, NewRecord(u))
	}

	return d.store.Save(ctx, storage.KeyUsers, records)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Value: value, Msg: "cannot be blank"}
	}
	return nil
}
