package session

import (
	"context"
	"fmt"

	"socialhub/pkg/user"
)

type key int

const (
	UserKey key = 1
)

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

func UserFromContext(ctx context.Context) (*user.User, error) {
	u, ok := ctx.Value(UserKey).(*user.User)
	if !ok {
		return nil, fmt.Errorf("Session not found")
	}

	return u, nil
}
