package ui

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/scalebench/internal/bench"
	"github.com/linuxmatters/scalebench/internal/cli"
)

// How often the running trial's budget is polled
const tickInterval = 100 * time.Millisecond

// SweepStarted announces the sweep before the first trial
type SweepStarted struct {
	Header       string
	ThreadCounts []int
}

// TrialStarted announces a trial. Budget is polled for progress until the
// trial finishes.
type TrialStarted struct {
	Threads    int
	Iterations int64
	Budget     *bench.Budget
}

// TrialFinished carries a completed trial
type TrialFinished struct {
	Trial bench.Trial
}

// SweepDone ends the UI. Err is nil for a successful sweep.
type SweepDone struct {
	Err error
}

type tickMsg time.Time

// progressQuitMsg is sent when it's time to quit after showing completion
type progressQuitMsg struct{}

// running is the live state of the current trial
type running struct {
	threads    int
	iterations int64
	budget     *bench.Budget
	started    time.Time
}

// Model is the bubbletea model of a sweep
type Model struct {
	progressBar progress.Model
	summaryBar  progress.Model

	header       string
	preview      string
	threadCounts []int
	current      *running
	trials       []bench.Trial
	err          error
	done         bool

	sweepStart      time.Time
	sweepTime       time.Duration
	completionDelay time.Duration
}

// NewModel creates the sweep UI model
func NewModel() *Model {
	p := progress.New(
		progress.WithGradient(string(cli.BenchTeal), string(cli.BenchLime)),
		progress.WithWidth(40),
	)

	// Smaller bar for the relative throughput column
	summaryBar := progress.New(
		progress.WithGradient(string(cli.BenchTeal), string(cli.BenchLime)),
		progress.WithWidth(20),
		progress.WithoutPercentage(),
	)

	return &Model{
		progressBar:     p,
		summaryBar:      summaryBar,
		sweepStart:      time.Now(),
		completionDelay: time.Second,
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// SetSource shows a small preview of the image being converted
func (m *Model) SetSource(img image.Image) {
	m.preview = RenderPreview(DownsampleImage(img, DefaultPreviewConfig()))
}

// Init starts the budget poller
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progressBar.Width = max(10, min(msg.Width-30, 50))
		return m, nil

	case SweepStarted:
		m.header = msg.Header
		m.threadCounts = msg.ThreadCounts
		m.sweepStart = time.Now()
		return m, nil

	case TrialStarted:
		m.current = &running{
			threads:    msg.Threads,
			iterations: msg.Iterations,
			budget:     msg.Budget,
			started:    time.Now(),
		}
		return m, nil

	case TrialFinished:
		m.trials = append(m.trials, msg.Trial)
		m.current = nil
		return m, nil

	case SweepDone:
		m.err = msg.Err
		m.done = true
		m.current = nil
		m.sweepTime = time.Since(m.sweepStart)
		return m, tea.Tick(m.completionDelay, func(time.Time) tea.Msg {
			return progressQuitMsg{}
		})

	case tickMsg:
		if m.done {
			return m, nil
		}
		return m, tick()

	case progressQuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		if m.done || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.done {
		return m.CompletionSummary()
	}
	return m.renderProgress()
}

// Err returns the error the sweep finished with
func (m *Model) Err() error { return m.err }

// Trials returns the completed trials in order
func (m *Model) Trials() []bench.Trial { return m.trials }

// CompletionSummary returns the final summary for printing once the
// program has exited, or an empty string while the sweep is running
func (m *Model) CompletionSummary() string {
	if !m.done {
		return ""
	}

	var s strings.Builder
	s.WriteString(m.renderTitle())
	s.WriteString(m.renderTrials())
	s.WriteString("\n")

	if m.err != nil {
		s.WriteString(cli.ErrorStyle.Render("✗ Sweep failed: "))
		s.WriteString(m.err.Error())
	} else {
		s.WriteString(cli.SuccessStyle.Render("✓ Sweep complete"))
		if best, ok := m.best(); ok {
			s.WriteString("\n\n")
			s.WriteString(cli.KeyStyle.Render("Peak:       "))
			s.WriteString(cli.ValueStyle.Render(fmt.Sprintf("%.1f fps @ %d threads", best.FPS(), best.Threads)))
			if speedup := m.speedup(best); speedup > 0 {
				s.WriteString("\n")
				s.WriteString(cli.KeyStyle.Render("Scaling:    "))
				s.WriteString(cli.ValueStyle.Render(fmt.Sprintf("%.2fx over %d thread", speedup, m.trials[0].Threads)))
				s.WriteString("\n")
				s.WriteString(cli.KeyStyle.Render("Efficiency: "))
				s.WriteString(cli.ValueStyle.Render(fmt.Sprintf("%.0f%%", 100*speedup*float64(m.trials[0].Threads)/float64(best.Threads))))
			}
		}
	}
	s.WriteString("\n")
	s.WriteString(cli.KeyStyle.Render("Total time: "))
	s.WriteString(cli.HighlightStyle.Render(cli.FormatDuration(m.sweepTime)))

	return cli.BoxStyle.Render(s.String()) + "\n"
}

func (m *Model) renderTitle() string {
	var s strings.Builder
	s.WriteString(cli.TitleStyle.Render("scalebench"))
	s.WriteString("\n")
	if m.header != "" {
		s.WriteString(cli.SubtitleStyle.Render(m.header))
		s.WriteString("\n")
	}
	if m.preview != "" && !m.done {
		s.WriteString(m.preview)
		s.WriteString("\n")
	}
	return s.String()
}

func (m *Model) renderProgress() string {
	var s strings.Builder
	s.WriteString(m.renderTitle())
	s.WriteString("\n")

	if m.current != nil {
		c := m.current
		ratio := 1.0
		if c.iterations > 0 {
			ratio = float64(c.iterations-c.budget.Remaining()) / float64(c.iterations)
		}
		s.WriteString(fmt.Sprintf("%s %s\n",
			cli.KeyStyle.Render(fmt.Sprintf("Trial %d/%d:", len(m.trials)+1, max(len(m.threadCounts), 1))),
			cli.ValueStyle.Render(fmt.Sprintf("%d threads, %d conversions", c.threads, c.iterations))))
		s.WriteString(m.progressBar.ViewAs(ratio))
		s.WriteString(fmt.Sprintf("  %s\n", cli.FormatDuration(time.Since(c.started))))
	} else {
		s.WriteString(muted("Preparing..."))
		s.WriteString("\n")
	}

	if len(m.trials) > 0 {
		s.WriteString(m.renderTrials())
	}
	return s.String()
}

// renderTrials renders one row per completed trial with a bar relative to
// the fastest trial so far
func (m *Model) renderTrials() string {
	if len(m.trials) == 0 {
		return ""
	}

	var peak float64
	for _, t := range m.trials {
		peak = max(peak, t.FPS())
	}

	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(cli.ColumnStyle.Render(fmt.Sprintf("%7s  %10s  %12s  %7s", "threads", "iterations", "fps", "speedup")))
	s.WriteString("\n")
	for _, t := range m.trials {
		ratio := 0.0
		if peak > 0 {
			ratio = t.FPS() / peak
		}
		speedup := "-"
		if v := m.speedup(t); v > 0 {
			speedup = fmt.Sprintf("%.2fx", v)
		}
		s.WriteString(fmt.Sprintf("%7d  %10d  %12.6g  %7s  %s\n",
			t.Threads, t.Iterations, t.FPS(), speedup, m.summaryBar.ViewAs(ratio)))
	}
	return s.String()
}

// best returns the trial with the highest throughput
func (m *Model) best() (bench.Trial, bool) {
	if len(m.trials) == 0 {
		return bench.Trial{}, false
	}
	best := m.trials[0]
	for _, t := range m.trials[1:] {
		if t.FPS() > best.FPS() {
			best = t
		}
	}
	return best, true
}

// speedup is t's throughput relative to the first trial
func (m *Model) speedup(t bench.Trial) float64 {
	if len(m.trials) == 0 {
		return 0
	}
	base := m.trials[0].FPS()
	if base <= 0 {
		return 0
	}
	return t.FPS() / base
}

// muted renders s in the dim palette colour
func muted(s string) string {
	return lipgloss.NewStyle().Foreground(cli.Slate).Render(s)
}
