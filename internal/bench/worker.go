package bench

import (
	"fmt"
	"runtime"

	"github.com/linuxmatters/scalebench/internal/logger"
	"github.com/linuxmatters/scalebench/internal/scaler"
)

// worker is the per-goroutine state of one trial participant
type worker struct {
	id           int
	cfg          Config
	newConverter ConverterFunc
	budget       *Budget
	failure      *Failure
	log          *logger.Logger
}

// run converts frames until the budget runs dry or something fails, and
// returns the number of conversions it completed. Errors never leave the
// worker: they are recorded into the shared failure code instead.
func (w *worker) run() (done int64) {
	// One OS thread per worker for the worker's whole life. The thread is
	// discarded when the goroutine exits still locked.
	runtime.LockOSThread()

	defer func() {
		if r := recover(); r != nil {
			w.failure.Record(scaler.CodeUnknown)
			w.log.Error().
				Int("worker", w.id).
				Str("panic", fmt.Sprint(r)).
				Msg("worker panicked")
		}
	}()

	conv, err := w.newConverter(w.cfg)
	if err != nil {
		code := scaler.Code(err)
		w.failure.Record(code)
		w.log.Error().
			Int("worker", w.id).
			Int("code", code).
			Err(err).
			Msg("failed to allocate conversion context")
		return 0
	}
	defer conv.Close()

	for w.budget.Take() {
		if err := conv.Convert(); err != nil {
			code := scaler.Code(err)
			w.failure.Record(code)
			w.log.Error().
				Int("worker", w.id).
				Int("code", code).
				Int64("completed", done).
				Err(err).
				Msg("conversion failed")
			return done
		}
		done++
	}

	w.log.Debug().Int("worker", w.id).Int64("completed", done).Msg("worker finished")
	return done
}
