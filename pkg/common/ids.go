package common

import "time"

// NextID returns a millisecond timestamp id for now, bumped past maxTaken
// so that two records created within the same millisecond never collide.
func NextID(now time.Time, maxTaken int64) int64 {
	id := now.UnixNano() / int64(time.Millisecond)
	if id <= maxTaken {
		id = maxTaken + 1
	}
	return id
}
