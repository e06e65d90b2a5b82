package eventlog

import (
	"sync/atomic"
	"time"
)

// Clock supplies candidate timestamps. The log never hands out a timestamp
// lower than or equal to the previous one, whatever the clock returns.
type Clock interface {
	Now() int64
}

// WallClock returns milliseconds since the Unix epoch.
type WallClock struct{}

func (WallClock) Now() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}

// StepClock returns 1, 2, 3, ... and is used for deterministic runs.
type StepClock struct {
	t int64
}

func (c *StepClock) Now() int64 {
	return atomic.AddInt64(&c.t, 1)
}
