package posts

import (
	"errors"
	"time"
)

type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionHaha  ReactionKind = "haha"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
	ReactionAngry ReactionKind = "angry"
)

// ReactionKinds lists every kind in display order.
var ReactionKinds = []ReactionKind{
	ReactionLike,
	ReactionLove,
	ReactionHaha,
	ReactionWow,
	ReactionSad,
	ReactionAngry,
}

var (
	ErrNotFound            = errors.New("post not found")
	ErrEmptyText           = errors.New("post text cannot be empty")
	ErrInvalidReactionKind = errors.New("invalid reaction kind")
)

func (k ReactionKind) Valid() bool {
	for _, kind := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func ParseReactionKind(s string) (ReactionKind, error) {
	k := ReactionKind(s)
	if !k.Valid() {
		return "", ErrInvalidReactionKind
	}
	return k, nil
}

// Post is a feed item. Liked is one flag per post, not per user: the feed
// has a single session, so only one like can be toggled on a post.
type Post struct {
	ID        int64
	Author    string
	Text      string
	Image     string
	Likes     int
	Liked     bool
	Timestamp time.Time
	Reactions map[ReactionKind]int
}

func (p *Post) clone() *Post {
	c := *p
	c.Reactions = make(map[ReactionKind]int, len(p.Reactions))
	for k, v := range p.Reactions {
		c.Reactions[k] = v
	}
	return &c
}
