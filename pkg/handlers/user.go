package handlers

import (
	"context"
	"net/http"

	"socialhub/pkg/user"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user.go -destination=mock_user.go -package=handlers

type UserHandler struct {
	Users    UsersDirectory
	Sessions SessionManager
	Logger   *zap.SugaredLogger
}

type UsersDirectory interface {
	Register(ctx context.Context, name, email, password string) (*user.User, error)
}

type SessionManager interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*user.User, error)
}

type RegisterReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type LoginReq struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *RegisterReq) validate() []*CustomError {
	return requireFields("body", map[string]*string{
		"name":     r.Name,
		"email":    r.Email,
		"password": r.Password,
	}, "name", "email", "password")
}

func (r *LoginReq) validate() []*CustomError {
	return requireFields("body", map[string]*string{
		"email":    r.Email,
		"password": r.Password,
	}, "email", "password")
}

func (u *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterReq
	if !readJSON(w, r, &req) {
		return
	}

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	created, err := u.Users.Register(ctx, *req.Name, *req.Email, *req.Password)
	if err != nil {
		writeError(w, u.Logger, err)
		return
	}

	writeJSON(w, mapToUserResponse(created), http.StatusCreated)
}

func (u *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if !readJSON(w, r, &req) {
		return
	}

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	logged, err := u.Sessions.Login(ctx, *req.Email, *req.Password)
	if err != nil {
		writeError(w, u.Logger, err)
		return
	}

	writeJSON(w, mapToUserResponse(logged), http.StatusOK)
}

func (u *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := u.Sessions.Logout(ctx); err != nil {
		writeError(w, u.Logger, err)
		return
	}

	WriteResponse(w, "success", http.StatusOK)
}

func (u *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	cur, err := u.Sessions.Current(ctx)
	if err != nil {
		writeError(w, u.Logger, err)
		return
	}

	if cur == nil {
		WriteResponse(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, mapToUserResponse(cur), http.StatusOK)
}
