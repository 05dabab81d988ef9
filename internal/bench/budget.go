package bench

import "sync/atomic"

// Budget is the shared count of conversions still owed in one trial.
// Workers claim units with Take; the counter may end up to one unit
// below zero per worker, which is expected.
type Budget struct {
	remaining atomic.Int64
}

// NewBudget creates a budget holding n work units
func NewBudget(n int64) *Budget {
	b := &Budget{}
	b.remaining.Store(n)
	return b
}

// Take claims one work unit. It reports false once the budget is exhausted.
func (b *Budget) Take() bool {
	return b.remaining.Add(-1) >= 0
}

// Remaining returns the number of unclaimed units, never negative
func (b *Budget) Remaining() int64 {
	if n := b.remaining.Load(); n > 0 {
		return n
	}
	return 0
}

// Failure is the shared failure code of one trial; zero means no failure.
// The first recorded code wins, later ones are dropped.
type Failure struct {
	code atomic.Int32
}

// Record stores code unless a failure is already recorded.
// A code that is zero once narrowed to 32 bits is stored as -1 so that
// recording always marks failure.
func (f *Failure) Record(code int) {
	c := int32(code)
	if c == 0 {
		c = -1
	}
	f.code.CompareAndSwap(0, c)
}

// Code returns the recorded failure code, or 0
func (f *Failure) Code() int { return int(f.code.Load()) }

// Failed reports whether any worker recorded a failure
func (f *Failure) Failed() bool { return f.code.Load() != 0 }
