package handlers

import (
	"context"
	"net/http"
	"time"

	"socialhub/pkg/feed"
	"socialhub/pkg/posts"
	"socialhub/pkg/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:generate mockgen -source=posts.go -destination=mock_posts.go -package=handlers

type PostHandler struct {
	Repo   PostsRepo
	Logger *zap.SugaredLogger
	Now    func() time.Time
}

type PostsRepo interface {
	GetAll() []*posts.Post
	GetByID(id int64) (*posts.Post, error)
	Create(ctx context.Context, author, text, image string) (*posts.Post, error)
	Edit(ctx context.Context, id int64, text, image string) (*posts.Post, error)
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, id int64) (*posts.Post, error)
	AddReaction(ctx context.Context, id int64, kind posts.ReactionKind) (*posts.Post, error)
}

type PostReq struct {
	Text  *string `json:"text"`
	Image *string `json:"image"`
}

func (p *PostReq) validate() []*CustomError {
	return requireFields("body", map[string]*string{"text": p.Text}, "text")
}

func (p *PostReq) image() string {
	if p.Image == nil {
		return ""
	}
	return *p.Image
}

func (h *PostHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// List answers GET /api/posts?q=&filter=. The filter defaults to latest.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	mode := feed.Mode(r.URL.Query().Get("filter"))
	if mode == "" {
		mode = feed.Latest
	}

	now := h.now()
	items := feed.Build(h.Repo.GetAll(), query, mode, now)
	resp := make([]*PostResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, MapToPostResponse(p, now))
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r, "id")
	if err != nil {
		WriteResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.Repo.GetByID(id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, MapToPostResponse(p, h.now()), http.StatusOK)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, err := session.UserFromContext(r.Context())
	if err != nil {
		WriteResponse(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req PostReq
	if !readJSON(w, r, &req) {
		return
	}

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	created, err := h.Repo.Create(ctx, u.Name, *req.Text, req.image())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, MapToPostResponse(created, h.now()), http.StatusCreated)
}

// Edit replaces text and image. An omitted image keeps the current one.
func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r, "id")
	if err != nil {
		WriteResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req PostReq
	if !readJSON(w, r, &req) {
		return
	}

	if validationErrors := req.validate(); len(validationErrors) > 0 {
		writeErrorsResponse(w, validationErrors, http.StatusUnprocessableEntity)
		return
	}

	image := req.image()
	if req.Image == nil {
		cur, err := h.Repo.GetByID(id)
		if err != nil {
			writeError(w, h.Logger, err)
			return
		}
		image = cur.Image
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	edited, err := h.Repo.Edit(ctx, id, *req.Text, image)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, MapToPostResponse(edited, h.now()), http.StatusOK)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r, "id")
	if err != nil {
		WriteResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	if err := h.Repo.Delete(ctx, id); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	WriteResponse(w, "success", http.StatusOK)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r, "id")
	if err != nil {
		WriteResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	p, err := h.Repo.ToggleLike(ctx, id)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, MapToPostResponse(p, h.now()), http.StatusOK)
}

func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r, "id")
	if err != nil {
		WriteResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	kind, err := posts.ParseReactionKind(mux.Vars(r)["kind"])
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	p, err := h.Repo.AddReaction(ctx, id, kind)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, MapToPostResponse(p, h.now()), http.StatusOK)
}
