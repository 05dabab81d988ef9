package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/scalebench/internal/bench"
)

// Reporter forwards sweep progress to a running bubbletea program
type Reporter struct {
	send func(tea.Msg)
}

// NewReporter creates a bench.Reporter that sends to p
func NewReporter(p *tea.Program) *Reporter {
	return &Reporter{send: p.Send}
}

func (r *Reporter) Begin(cfg bench.Config, threadCounts []int) {
	r.send(SweepStarted{Header: bench.Header(cfg), ThreadCounts: threadCounts})
}

func (r *Reporter) TrialStarted(threads int, iterations int64, budget *bench.Budget) {
	r.send(TrialStarted{Threads: threads, Iterations: iterations, Budget: budget})
}

func (r *Reporter) TrialFinished(t bench.Trial) {
	r.send(TrialFinished{Trial: t})
}

// Done ends the UI with the sweep result
func (r *Reporter) Done(err error) {
	r.send(SweepDone{Err: err})
}
