package posts

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type record struct {
	ID        int64          `json:"id"`
	Author    string         `json:"author"`
	Text      string         `json:"text"`
	Image     string         `json:"image"`
	Likes     int            `json:"likes"`
	Liked     bool           `json:"liked"`
	Timestamp time.Time      `json:"timestamp"`
	Reactions map[string]int `json:"reactions"`
}

func newRecord(p *Post) record {
	r := record{
		ID:        p.ID,
		Author:    p.Author,
		Text:      p.Text,
		Image:     p.Image,
		Likes:     p.Likes,
		Liked:     p.Liked,
		Timestamp: p.Timestamp,
		Reactions: make(map[string]int, len(p.Reactions)),
	}
	for k, v := range p.Reactions {
		r.Reactions[string(k)] = v
	}
	return r
}

func (r record) post() (*Post, error) {
	if r.ID <= 0 {
		return nil, fmt.Errorf("invalid id %d", r.ID)
	}
	if strings.TrimSpace(r.Text) == "" {
		return nil, errors.New("empty text")
	}
	if r.Likes < 0 {
		return nil, fmt.Errorf("negative likes %d", r.Likes)
	}
	if r.Timestamp.IsZero() {
		return nil, errors.New("missing timestamp")
	}

	p := &Post{
		ID:        r.ID,
		Author:    r.Author,
		Text:      r.Text,
		Image:     r.Image,
		Likes:     r.Likes,
		Liked:     r.Liked,
		Timestamp: r.Timestamp,
		Reactions: make(map[ReactionKind]int, len(r.Reactions)),
	}
	for k, v := range r.Reactions {
		kind, err := ParseReactionKind(k)
		if err != nil {
			return nil, fmt.Errorf("unknown reaction %q", k)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative %s count %d", k, v)
		}
		p.Reactions[kind] = v
	}

	return p, nil
}
