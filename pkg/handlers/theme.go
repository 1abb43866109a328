package handlers

import (
	"context"
	"net/http"

	"socialhub/pkg/session"

	"go.uber.org/zap"
)

//go:generate mockgen -source=theme.go -destination=mock_theme.go -package=handlers

type ThemeHandler struct {
	Themes ThemeStore
	Logger *zap.SugaredLogger
}

type ThemeStore interface {
	Get(ctx context.Context) (session.Theme, error)
	Set(ctx context.Context, t session.Theme) error
	Toggle(ctx context.Context) (session.Theme, error)
}

type ThemeResponse struct {
	Theme session.Theme `json:"theme"`
}

type ThemeReq struct {
	Theme *string `json:"theme"`
}

func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	t, err := h.Themes.Get(ctx)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, &ThemeResponse{Theme: t}, http.StatusOK)
}

func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req ThemeReq
	if !readJSON(w, r, &req) {
		return
	}

	if validationErrors := requireFields("body", map[string]*string{"theme": req.Theme}, "theme"); len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	t, err := session.ParseTheme(*req.Theme)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := h.Themes.Set(ctx, t); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, &ThemeResponse{Theme: t}, http.StatusOK)
}

func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	t, err := h.Themes.Toggle(ctx)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, &ThemeResponse{Theme: t}, http.StatusOK)
}
