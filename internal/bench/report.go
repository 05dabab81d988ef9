package bench

import (
	"fmt"
	"io"
)

// Reporter receives sweep progress from the Driver. Begin gets the thread
// counts the sweep will visit. TrialStarted is called before workers spawn
// and may poll the budget while the trial runs. TrialFinished is only
// called for trials that succeeded.
type Reporter interface {
	Begin(cfg Config, threadCounts []int)
	TrialStarted(threads int, iterations int64, budget *Budget)
	TrialFinished(t Trial)
}

type nopReporter struct{}

func (nopReporter) Begin(Config, []int)              {}
func (nopReporter) TrialStarted(int, int64, *Budget) {}
func (nopReporter) TrialFinished(Trial)              {}

// TextReporter writes the plain sweep report
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a TextReporter writing to w
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Header formats the one-line description of a sweep
func Header(cfg Config) string {
	return fmt.Sprintf("%s => %s", cfg.Src, cfg.Dst)
}

func (r *TextReporter) Begin(cfg Config, _ []int) {
	fmt.Fprintln(r.w, Header(cfg))
}

func (r *TextReporter) TrialStarted(int, int64, *Budget) {}

func (r *TextReporter) TrialFinished(t Trial) {
	fmt.Fprintf(r.w, "\nthreads:    %d\niterations: %d\nfps:        %.6g\n", t.Threads, t.Iterations, t.FPS())
}
