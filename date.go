package axiomfs

import (
	"math"
	"time"
)

// unixSeconds converts t into the 32-bit unsigned UNIX timestamp stored in the header.
// Times before the epoch become 0, times after 2106-02-07 06:28:15 UTC become math.MaxUint32.
func unixSeconds(t time.Time) uint32 {
	s := t.Unix()
	if s < 0 {
		return 0
	}
	if s > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(s)
}

// fromUnixSeconds is the inverse of unixSeconds.
// It returns the time in the local time zone, just like it gets shown to users.
func fromUnixSeconds(s uint32) time.Time {
	return time.Unix(int64(s), 0)
}
