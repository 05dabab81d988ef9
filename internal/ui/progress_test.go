package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxmatters/scalebench/internal/bench"
	"github.com/linuxmatters/scalebench/internal/cli"
	"github.com/linuxmatters/scalebench/internal/pixfmt"
	"github.com/linuxmatters/scalebench/internal/scaler"
)

func init() {
	cli.DisableColour()
}

func update(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func TestModel_TrialProgress(t *testing.T) {
	m := NewModel()
	assert.Contains(t, m.View(), "Preparing...")

	update(t, m, SweepStarted{Header: "yuv420p @ 64x64 => rgba @ 32x32", ThreadCounts: []int{1, 2}})
	budget := bench.NewBudget(10)
	for i := 0; i < 5; i++ {
		budget.Take()
	}
	update(t, m, TrialStarted{Threads: 1, Iterations: 10, Budget: budget})

	view := m.View()
	assert.Contains(t, view, "yuv420p @ 64x64 => rgba @ 32x32")
	assert.Contains(t, view, "Trial 1/2:")
	assert.Contains(t, view, "1 threads, 10 conversions")
	assert.Contains(t, view, "50%")

	update(t, m, TrialFinished{Trial: bench.Trial{Threads: 1, Iterations: 10, Conversions: 10, Elapsed: time.Second}})
	view = m.View()
	assert.Contains(t, view, "threads")
	assert.Contains(t, view, "1.00x")
	assert.Empty(t, m.CompletionSummary())
}

func TestModel_CompletionSummary(t *testing.T) {
	m := NewModel()
	update(t, m, SweepStarted{Header: "h", ThreadCounts: []int{1, 2}})
	update(t, m, TrialFinished{Trial: bench.Trial{Threads: 1, Iterations: 10, Elapsed: time.Second}})
	update(t, m, TrialFinished{Trial: bench.Trial{Threads: 2, Iterations: 20, Elapsed: time.Second}})

	cmd := update(t, m, SweepDone{})
	assert.NotNil(t, cmd, "completion schedules the quit")
	assert.NoError(t, m.Err())
	require.Len(t, m.Trials(), 2)

	summary := m.CompletionSummary()
	assert.Contains(t, summary, "Sweep complete")
	assert.Contains(t, summary, "20.0 fps @ 2 threads")
	assert.Contains(t, summary, "2.00x over 1 thread")
	assert.Contains(t, summary, "Efficiency:")
	assert.Contains(t, summary, "100%")
	assert.Equal(t, summary, m.View())

	// Ticks stop once the sweep is over
	assert.Nil(t, update(t, m, tickMsg(time.Now())))
}

func TestModel_Failure(t *testing.T) {
	m := NewModel()
	err := &bench.Error{Threads: 1, Code: -22}
	update(t, m, SweepDone{Err: err})

	assert.ErrorIs(t, m.Err(), bench.ErrWorkerFailed)
	assert.Contains(t, m.CompletionSummary(), "Sweep failed")
	assert.NotContains(t, m.CompletionSummary(), "Peak")
}

func TestModel_Keys(t *testing.T) {
	m := NewModel()
	assert.Nil(t, update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}))
	assert.NotNil(t, update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.NotNil(t, update(t, m, tickMsg(time.Now())), "ticks continue while running")
}

func TestReporter_ForwardsMessages(t *testing.T) {
	var got []tea.Msg
	r := &Reporter{send: func(msg tea.Msg) { got = append(got, msg) }}

	cfg := bench.Config{
		Src: scaler.Geometry{Format: pixfmt.MustLookup("nv12"), Width: 8, Height: 8},
		Dst: scaler.Geometry{Format: pixfmt.MustLookup("gray"), Width: 4, Height: 4},
	}
	budget := bench.NewBudget(2)
	trial := bench.Trial{Threads: 1, Iterations: 2}

	r.Begin(cfg, []int{1})
	r.TrialStarted(1, 2, budget)
	r.TrialFinished(trial)
	r.Done(nil)

	require.Len(t, got, 4)
	assert.Equal(t, SweepStarted{Header: "nv12 @ 8x8 => gray @ 4x4", ThreadCounts: []int{1}}, got[0])
	assert.Equal(t, TrialStarted{Threads: 1, Iterations: 2, Budget: budget}, got[1])
	assert.Equal(t, TrialFinished{Trial: trial}, got[2])
	assert.Equal(t, SweepDone{}, got[3])

	var _ bench.Reporter = r
}
