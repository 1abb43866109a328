// Package feed builds the displayed projection of the post collection. It
// never modifies the posts it is given.
package feed

import (
	"sort"
	"strings"
	"time"

	"socialhub/pkg/posts"
)

type Mode string

const (
	Latest   Mode = "latest"
	Oldest   Mode = "oldest"
	Popular  Mode = "popular"
	Trending Mode = "trending"
)

// Build filters all by query (case-insensitive substring of text or
// author) and orders the result by mode. An unknown mode keeps the source
// order. Trending ranks posts created on now's calendar day by likes and
// scores every older post as zero; now's location decides the day.
func Build(all []*posts.Post, query string, mode Mode, now time.Time) []*posts.Post {
	res := make([]*posts.Post, 0, len(all))
	q := strings.ToLower(query)
	for _, p := range all {
		if q == "" || matches(p, q) {
			res = append(res, p)
		}
	}

	switch mode {
	case Latest:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].Timestamp.After(res[j].Timestamp)
		})
	case Oldest:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].Timestamp.Before(res[j].Timestamp)
		})
	case Popular:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].Likes > res[j].Likes
		})
	case Trending:
		score := func(p *posts.Post) int {
			if sameDay(p.Timestamp, now) {
				return p.Likes
			}
			return 0
		}
		sort.SliceStable(res, func(i, j int) bool {
			return score(res[i]) > score(res[j])
		})
	}

	return res
}

func matches(p *posts.Post, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Text), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Author), lowerQuery)
}

func sameDay(ts, now time.Time) bool {
	y1, m1, d1 := ts.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
