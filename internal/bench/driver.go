package bench

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/linuxmatters/scalebench/internal/logger"
	"github.com/linuxmatters/scalebench/internal/scaler"
)

// Config describes one benchmark sweep
type Config struct {
	Src scaler.Geometry
	Dst scaler.Geometry

	// Iterations is the per-thread conversion count; a trial with n
	// threads owes Iterations*n conversions in total.
	Iterations int

	// Threads fixes the single thread count to run. Zero sweeps from one
	// thread up to the available parallelism.
	Threads int

	Filter      scaler.Filter
	FilterParam int
}

// Validate checks the configuration before any trial runs
func (c Config) Validate() error {
	for _, g := range []struct {
		what string
		geo  scaler.Geometry
	}{{"source", c.Src}, {"destination", c.Dst}} {
		if g.geo.Format.Name == "" {
			return fmt.Errorf("%s pixel format is not set", g.what)
		}
		if g.geo.Width <= 0 || g.geo.Height <= 0 {
			return fmt.Errorf("%s dimensions must be positive, got %dx%d", g.what, g.geo.Width, g.geo.Height)
		}
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", c.Threads)
	}
	return nil
}

// Trial is one measured run of the worker pool at a fixed thread count
type Trial struct {
	Threads     int
	Iterations  int64         // Conversions owed by the trial
	Conversions int64         // Conversions the workers actually completed
	Elapsed     time.Duration // Spawn to join
}

// FPS returns the trial throughput in frames per second. Trials with no
// work or no measurable duration report zero.
func (t Trial) FPS() float64 {
	secs := t.Elapsed.Seconds()
	if t.Iterations <= 0 || secs <= 0 {
		return 0
	}
	return float64(t.Iterations) / secs
}

// Driver runs the sweep
type Driver struct {
	cfg          Config
	newConverter ConverterFunc
	reporter     Reporter
	log          *logger.Logger
	parallelism  int
}

// Option configures a Driver
type Option func(*Driver)

// WithConverter replaces the conversion context each worker allocates
func WithConverter(fn ConverterFunc) Option {
	return func(d *Driver) { d.newConverter = fn }
}

// WithReporter sets where trial results go
func WithReporter(r Reporter) Option {
	return func(d *Driver) { d.reporter = r }
}

// WithLogger sets the diagnostic logger
func WithLogger(l *logger.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithParallelism overrides the upper bound of an automatic sweep
func WithParallelism(n int) Option {
	return func(d *Driver) { d.parallelism = n }
}

// New validates cfg and builds a Driver. Without options it converts with
// the scaler package on zeroed frames and reports nothing.
func New(cfg Config, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := &Driver{
		cfg:          cfg,
		newConverter: ScaleConverter(nil),
		reporter:     nopReporter{},
		log:          logger.Nop(),
		parallelism:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.parallelism < 1 {
		d.parallelism = 1
	}
	if cfg.Threads > d.parallelism {
		d.log.Warn().
			Int("threads", cfg.Threads).
			Int("cpus", d.parallelism).
			Msg("thread count exceeds available CPUs")
	}
	return d, nil
}

// ThreadCounts lists the thread counts the sweep visits, in order
func (d *Driver) ThreadCounts() []int {
	if d.cfg.Threads > 0 {
		return []int{d.cfg.Threads}
	}
	counts := make([]int, 0, d.parallelism)
	for n := 1; n <= d.parallelism; n++ {
		counts = append(counts, n)
	}
	return counts
}

// Sweep runs one trial per thread count. The first failed trial ends the
// sweep with an *Error; no later trial runs.
func (d *Driver) Sweep() error {
	counts := d.ThreadCounts()
	d.reporter.Begin(d.cfg, counts)

	for _, n := range counts {
		trial, err := d.RunTrial(n)
		if err != nil {
			return err
		}
		d.reporter.TrialFinished(trial)
	}
	return nil
}

// RunTrial runs n workers against a fresh budget of Iterations*n units and
// returns the measured trial. A worker failure yields an *Error carrying
// the recorded code.
func (d *Driver) RunTrial(n int) (Trial, error) {
	if n < 1 {
		return Trial{}, fmt.Errorf("trial needs at least one thread, got %d", n)
	}

	total := int64(d.cfg.Iterations) * int64(n)
	budget := NewBudget(total)
	failure := &Failure{}
	completed := make([]int64, n)

	log := d.log.Extend(d.log.With().Int("threads", n))
	log.Debug().Int64("iterations", total).Msg("trial starting")
	d.reporter.TrialStarted(n, total, budget)

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		w := &worker{
			id:           i,
			cfg:          d.cfg,
			newConverter: d.newConverter,
			budget:       budget,
			failure:      failure,
			log:          log,
		}
		go func(slot int) {
			defer wg.Done()
			completed[slot] = w.run()
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	trial := Trial{Threads: n, Iterations: total, Elapsed: elapsed}
	for _, c := range completed {
		trial.Conversions += c
	}

	if failure.Failed() {
		log.Error().
			Int("code", failure.Code()).
			Int64("completed", trial.Conversions).
			Msg("trial failed")
		return Trial{}, &Error{Threads: n, Code: failure.Code()}
	}

	log.Debug().
		Dur("elapsed", elapsed).
		Int64("completed", trial.Conversions).
		Float64("fps", trial.FPS()).
		Msg("trial finished")
	return trial, nil
}

// FailureCode extracts the worker failure code from a Sweep error, or 0
func FailureCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
