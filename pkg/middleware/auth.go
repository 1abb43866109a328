package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"socialhub/pkg/session"
	"socialhub/pkg/user"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=middleware

type SessionChecker interface {
	Current(ctx context.Context) (*user.User, error)
}

var authRoutes = map[string]string{
	"/api/posts": http.MethodPost,
}

func needsAuth(r *http.Request) bool {
	if m, ok := authRoutes[r.URL.Path]; ok && m == r.Method {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/post/") && r.Method != http.MethodGet
}

// Auth rejects feed mutations made without a logged-in user and puts the
// current user into the request context otherwise.
func Auth(logger *zap.SugaredLogger, sm SessionChecker, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !needsAuth(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		cur, err := sm.Current(ctx)
		if err != nil {
			logger.Error(err.Error())
		}
		if err != nil || cur == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			errorBody, _ := json.Marshal(map[string]string{"message": "unauthorized"})
			w.Write(errorBody)

			return
		}

		next.ServeHTTP(w, r.WithContext(session.ContextWithUser(r.Context(), cur)))
	})
}
