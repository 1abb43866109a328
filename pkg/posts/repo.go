package posts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"socialhub/pkg/common"
	"socialhub/pkg/storage"

	"go.uber.org/zap"
)

// Repo owns the post collection, newest created first. Every mutation is
// persisted before it returns; when the write fails the in-memory
// collection is left as it was.
type Repo struct {
	mu     *sync.Mutex
	store  *storage.Store
	data   []*Post
	now    func() time.Time
	logger *zap.SugaredLogger
}

func NewRepo(store *storage.Store, logger *zap.SugaredLogger) *Repo {
	return &Repo{store: store, logger: logger, now: time.Now, data: make([]*Post, 0, 10), mu: &sync.Mutex{}}
}

// Load replaces the in-memory collection with the stored one. When nothing
// is stored yet and seedDemo is set, the demo posts are written instead.
func (r *Repo) Load(ctx context.Context, seedDemo bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []record
	found, err := r.store.LoadInto(ctx, storage.KeyPosts, &records)
	if err != nil {
		return err
	}

	if !found {
		data := make([]*Post, 0, 10)
		if seedDemo {
			data = demoPosts(r.now().Round(0))
			if err := r.persist(ctx, data); err != nil {
				return err
			}
			r.logger.Infow("seeded demo posts", "count", len(data))
		}
		r.data = data
		return nil
	}

	data := make([]*Post, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for i, rec := range records {
		p, err := rec.post()
		if err != nil {
			return fmt.Errorf("%w: posts[%d]: %v", storage.ErrCorruptState, i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: posts[%d]: duplicate id %d", storage.ErrCorruptState, i, p.ID)
		}
		seen[p.ID] = true
		data = append(data, p)
	}

	r.data = data
	r.logger.Infow("posts loaded", "count", len(data))
	return nil
}

// GetAll returns copies of every post in canonical order.
func (r *Repo) GetAll() []*Post {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := make([]*Post, 0, len(r.data))
	for _, p := range r.data {
		res = append(res, p.clone())
	}
	return res
}

func (r *Repo) GetByID(id int64) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}
	return r.data[i].clone(), nil
}

func (r *Repo) Create(ctx context.Context, author, text, image string) (*Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID int64
	for _, p := range r.data {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	now := r.now().Round(0)
	p := &Post{
		ID:        common.NextID(now, maxID),
		Author:    author,
		Text:      text,
		Image:     strings.TrimSpace(image),
		Timestamp: now,
		Reactions: map[ReactionKind]int{},
	}

	next := make([]*Post, 0, len(r.data)+1)
	next = append(next, p)
	next = append(next, r.data...)
	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}

	r.data = next
	r.logger.Infow("post created", "id", p.ID, "author", p.Author)
	return p.clone(), nil
}

// Delete removes the post with the given id. A missing id is reported as
// ErrNotFound rather than ignored.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return notFound(id)
	}

	next := make([]*Post, 0, len(r.data)-1)
	next = append(next, r.data[:i]...)
	next = append(next, r.data[i+1:]...)
	if err := r.persist(ctx, next); err != nil {
		return err
	}

	r.data = next
	r.logger.Infow("post deleted", "id", id)
	return nil
}

func (r *Repo) ToggleLike(ctx context.Context, id int64) (*Post, error) {
	return r.update(ctx, id, func(p *Post) error {
		p.Liked = !p.Liked
		if p.Liked {
			p.Likes++
		} else if p.Likes > 0 {
			p.Likes--
		}
		return nil
	})
}

func (r *Repo) Edit(ctx context.Context, id int64, text, image string) (*Post, error) {
	text = strings.TrimSpace(text)
	return r.update(ctx, id, func(p *Post) error {
		if text == "" {
			return ErrEmptyText
		}
		p.Text = text
		p.Image = strings.TrimSpace(image)
		return nil
	})
}

// AddReaction bumps one reaction counter. There is no per-user limit.
func (r *Repo) AddReaction(ctx context.Context, id int64, kind ReactionKind) (*Post, error) {
	return r.update(ctx, id, func(p *Post) error {
		if !kind.Valid() {
			return ErrInvalidReactionKind
		}
		p.Reactions[kind]++
		return nil
	})
}

// update applies f to a copy of the post and swaps the copy in only after
// the new collection has been persisted.
func (r *Repo) update(ctx context.Context, id int64, f func(p *Post) error) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, notFound(id)
	}

	p := r.data[i].clone()
	if err := f(p); err != nil {
		return nil, err
	}

	next := make([]*Post, len(r.data))
	copy(next, r.data)
	next[i] = p
	if err := r.persist(ctx, next); err != nil {
		return nil, err
	}

	r.data = next
	r.logger.Debugw("post updated", "id", id, "likes", p.Likes, "liked", p.Liked)
	return p.clone(), nil
}

func (r *Repo) persist(ctx context.Context, data []*Post) error {
	records := make([]record, 0, len(data))
	for _, p := range data {
		records = append(records, newRecord(p))
	}
	return r.store.Save(ctx, storage.KeyPosts, records)
}

func (r *Repo) indexOf(id int64) int {
	for i, p := range r.data {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return fmt.Errorf("%w: %d", ErrNotFound, id)
}
