package session

import "time"

// Clock is the wall clock the frame driver measures dt with.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
