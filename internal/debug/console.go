// Package debug is the text override console: wind overrides and forced effect bursts.
package debug

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"windswept/internal/config"
	"windswept/internal/wind"
)

// Target is what the console drives. *driver.Driver satisfies it.
type Target interface {
	SetWind(dir mgl64.Vec3, t wind.Type) wind.State
	Wind() wind.State
	ForceCascade(seconds int) (int, error)
	ForceRipples(seconds int) (int, error)
	ForceDust(seconds int) (int, error)
}

// ErrUnknownCommand is returned for lines the console does not understand.
var ErrUnknownCommand = errors.New("unknown command")

// compass names the eight directions a day can roll, in CompassDirection order.
var compass = []string{"e", "se", "s", "sw", "w", "nw", "n", "ne"}

const usage = `commands:
  wind set <none|soft|normal|heavy|storm> [e|se|s|sw|w|nw|n|ne]
  wind show
  cascade <seconds>
  ripple <seconds>
  dustcloud <seconds>
  tickrate <ticks per second>
  mute | unmute
  help`

// Console parses override commands and prints colored feedback.
type Console struct {
	target Target
	out    io.Writer
	log    logrus.FieldLogger

	ok   *color.Color
	info *color.Color
	fail *color.Color
}

// NewConsole writes feedback to out.
func NewConsole(target Target, out io.Writer, log logrus.FieldLogger) *Console {
	return &Console{
		target: target,
		out:    out,
		log:    log,
		ok:     color.New(color.FgGreen),
		info:   color.New(color.FgCyan),
		fail:   color.New(color.FgRed),
	}
}

// Run reads commands from r until it is exhausted or ctx is done. Command errors are printed,
// not returned.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			if err := c.Execute(line); err != nil {
				c.fail.Fprintln(c.out, err)
			}
		}
	}
}

// Execute runs one command line. A leading "windswept" is accepted and ignored.
func (c *Console) Execute(line string) error {
	args := strings.Fields(strings.ToLower(line))
	if len(args) > 0 && args[0] == "windswept" {
		args = args[1:]
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "wind":
		return c.wind(args[1:])
	case "cascade":
		return c.burst("cascade", args[1:], c.target.ForceCascade)
	case "ripple":
		return c.burst("ripple", args[1:], c.target.ForceRipples)
	case "dustcloud":
		return c.burst("dustcloud", args[1:], c.target.ForceDust)
	case "tickrate":
		if len(args) != 2 {
			return fmt.Errorf("usage: tickrate <ticks per second>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("tickrate: %w", err)
		}
		config.SetTickRate(n)
		c.ok.Fprintf(c.out, "Tick rate set to %d\n", config.GetTickRate())
		return nil
	case "mute", "unmute":
		config.SetMuted(args[0] == "mute")
		c.ok.Fprintf(c.out, "Audio muted: %v\n", config.GetMuted())
		return nil
	case "help":
		c.info.Fprintln(c.out, usage)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
}

func (c *Console) wind(args []string) error {
	if len(args) == 1 && args[0] == "show" {
		c.info.Fprintf(c.out, "Wind: %s\n", c.target.Wind())
		return nil
	}
	if len(args) < 2 || len(args) > 3 || args[0] != "set" {
		return fmt.Errorf("usage: wind set <type> [direction] | wind show")
	}

	t, err := wind.ParseType(args[1])
	if err != nil {
		return err
	}
	dir := wind.CompassDirection(0)
	if len(args) == 3 {
		i := slices.Index(compass, args[2])
		if i < 0 {
			return fmt.Errorf("unknown direction %q (want one of %s)", args[2], strings.Join(compass, ", "))
		}
		dir = wind.CompassDirection(i)
	}

	st := c.target.SetWind(dir, t)
	c.log.WithField("wind", st.Type).Debug("Console set wind")
	c.ok.Fprintf(c.out, "Set wind to %s\n", strings.ToUpper(st.Type.String()))
	return nil
}

func (c *Console) burst(name string, args []string, force func(int) (int, error)) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <seconds>", name)
	}
	seconds, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	n, err := force(seconds)
	if err != nil {
		return err
	}
	c.ok.Fprintf(c.out, "Spawning %d %s particles around the player for %d seconds\n", n, name, seconds)
	return nil
}
