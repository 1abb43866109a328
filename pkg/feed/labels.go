package feed

import (
	"fmt"
	"time"

	"socialhub/pkg/posts"
)

// TimeAgo renders ts relative to now: "Just now", "5m ago", "3h ago",
// "2d ago", and a month/day/year date after a week.
func TimeAgo(ts, now time.Time) string {
	mins := int(now.Sub(ts) / time.Minute)
	hours := mins / 60
	days := hours / 24

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	}

	return ts.In(now.Location()).Format("1/2/2006")
}

type ReactionCount struct {
	Kind  posts.ReactionKind `json:"kind"`
	Count int                `json:"count"`
}

// ReactionCounts lists the non-zero counters in display order.
func ReactionCounts(reactions map[posts.ReactionKind]int) []ReactionCount {
	res := make([]ReactionCount, 0, len(reactions))
	for _, k := range posts.ReactionKinds {
		if n := reactions[k]; n > 0 {
			res = append(res, ReactionCount{Kind: k, Count: n})
		}
	}
	return res
}
