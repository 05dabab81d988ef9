package bench

import (
	"errors"
	"fmt"
)

// ErrWorkerFailed is the sentinel behind every sweep failure
var ErrWorkerFailed = errors.New("thread target failed")

// Error reports the trial that aborted the sweep and the failure code
// recorded by its workers
type Error struct {
	Threads int
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v (threads: %d, failure: %d)", ErrWorkerFailed, e.Threads, e.Code)
}

func (e *Error) Unwrap() error { return ErrWorkerFailed }
