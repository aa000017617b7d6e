package game

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"windswept/internal/driver"
	"windswept/internal/profiling"
)

// slowStep is the budget above which a whole step is logged with its top tasks.
const slowStep = 16 * time.Millisecond

// App runs a session headlessly at the configured tick rate, printing a status line now and then.
type App struct {
	session *Session
	limiter *TickLimiter
	log     logrus.FieldLogger
	out     io.Writer

	// StatusEvery is the number of ticks between status lines. Zero disables them.
	StatusEvery int64

	label *color.Color
	value *color.Color
}

func NewApp(s *Session, out io.Writer, log logrus.FieldLogger) *App {
	return &App{
		session:     s,
		limiter:     NewTickLimiter(),
		log:         log,
		out:         out,
		StatusEvery: 100,
		label:       color.New(color.FgBlue),
		value:       color.New(color.FgGreen, color.Bold),
	}
}

// Run steps the session until ctx is done or maxTicks steps have run. maxTicks <= 0 runs
// until cancelled. Cancellation is a normal exit.
func (a *App) Run(ctx context.Context, maxTicks int64) error {
	for maxTicks <= 0 || a.session.Ticks() < maxTicks {
		select {
		case <-ctx.Done():
			a.log.WithField("ticks", a.session.Ticks()).Debug("Run cancelled")
			return nil
		default:
		}
		a.tick()
		a.limiter.Wait(a.session.Paused)
	}
	return nil
}

func (a *App) tick() {
	start := time.Now()
	rep := a.session.Step()

	if d := time.Since(start); d > slowStep {
		a.log.Debugf("Slow step: %v. Top tasks: %s", d, profiling.TopN(5))
	}
	if a.StatusEvery > 0 && a.session.Ticks()%a.StatusEvery == 0 {
		a.printStatus(rep)
	}
}

func (a *App) printStatus(rep driver.Report) {
	var b strings.Builder
	field := func(name string, v any) {
		if b.Len() > 0 {
			b.WriteString("  ")
		}
		b.WriteString(a.label.Sprint(name))
		b.WriteString(" ")
		b.WriteString(a.value.Sprint(v))
	}
	field("tick", rep.Tick)
	if rep.Skipped {
		field("player", "missing")
	}
	field("wind", rep.Wind)
	field("impacts", rep.Impacts)
	field("edges", rep.Edges)
	field("particles", a.session.Particles.Len())
	field("pending", rep.Pending)
	field("time", a.session.World.Time())
	fmt.Fprintln(a.out, b.String())
}

// Summary prints the per-kind effect totals of the session.
func (a *App) Summary() {
	color.New(color.FgCyan, color.Bold).Fprintf(a.out, "Session summary after %d ticks\n", a.session.Ticks())
	counts := a.session.Tally.Snapshot()
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(a.out, "  %-14s %s\n", name, a.value.Sprint(counts[name]))
	}
	fmt.Fprintf(a.out, "  %-14s %s\n", "dropped", a.value.Sprint(a.session.Particles.Dropped()))
}
