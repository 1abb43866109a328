package common

import (
	"testing"
	"time"
)

func TestNextID(t *testing.T) {
	now := time.Date(2025, 11, 22, 10, 0, 0, 0, time.UTC)
	ms := now.UnixNano() / int64(time.Millisecond)

	cases := []struct {
		name     string
		maxTaken int64
		expected int64
	}{
		{name: "EmptyCollection", maxTaken: 0, expected: ms},
		{name: "OlderIDs", maxTaken: ms - 3600000, expected: ms},
		{name: "SameMillisecond", maxTaken: ms, expected: ms + 1},
		{name: "FutureID", maxTaken: ms + 10, expected: ms + 11},
	}

	for _, tc := range cases {
		if res := NextID(now, tc.maxTaken); res != tc.expected {
			t.Errorf("test %s fail, expected %d but was %d", tc.name, tc.expected, res)
		}
	}
}
