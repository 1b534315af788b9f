package process

import (
	"fmt"
	"time"
)

// Limits bound a single process execution.
type Limits struct {
	// WallTime is the hard deadline measured from process start.
	WallTime time.Duration
	// OutputBytes caps how much of stdout and of stderr is kept, per stream.
	OutputBytes int64
	// KillGrace is how long Execute waits for the output pipes to close after
	// the child exits or is killed.
	KillGrace time.Duration
}

func DefaultLimits() Limits {
	return Limits{
		WallTime:    2 * time.Second,
		OutputBytes: 64 * 1024,
		KillGrace:   100 * time.Millisecond,
	}
}

func (l Limits) validate() error {
	if l.WallTime <= 0 {
		return fmt.Errorf("wall time limit must be positive, got %s", l.WallTime)
	}
	if l.OutputBytes <= 0 {
		return fmt.Errorf("output limit must be positive, got %d", l.OutputBytes)
	}
	return nil
}
