// Command windswept runs an ambient effect session without a window and prints what it detects.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"

	"windswept/internal/ambient"
	"windswept/internal/audio"
	"windswept/internal/config"
	"windswept/internal/debug"
	"windswept/internal/game"
)

var (
	scene        = flag.String("scene", game.ScenePlains, "scene to run: plains or terrain")
	seed         = flag.Int64("seed", 1, "terrain and effect seed")
	configPath   = flag.String("config", "", "YAML tuning file laid over the defaults")
	ticks        = flag.Int64("ticks", 0, "stop after this many ticks, 0 runs until interrupted")
	tickRate     = flag.Int("tickrate", 20, "ticks per second, 0 runs unthrottled")
	maxParticles = flag.Int("max-particles", 4096, "live particle cap")
	flat         = flag.Int("flat", 0, "grass height; flattens the terrain scene, 0 keeps its noise")
	seaLevel     = flag.Int("sea-level", 62, "still-water height of the terrain scene")
	statusEvery  = flag.Int64("status", 100, "ticks between status lines, 0 disables them")
	logLevel     = flag.String("log-level", "info", "panic, fatal, error, warn, info, debug or trace")
	trace        = flag.Bool("trace", false, "log every spawned effect")
	withAudio    = flag.Bool("audio", false, "play the ambient channels on the default output device")
	console      = flag.Bool("console", true, "read override commands from stdin")
	mapPath      = flag.String("map", "", "write a feature map PNG here on exit")
)

func main() {
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	lvl, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("Bad log level")
	}
	log.SetLevel(lvl)

	tuning := config.Default()
	if *configPath != "" {
		if tuning, err = config.Load(*configPath); err != nil {
			log.WithError(err).Fatal("Could not load tuning")
		}
		log.WithField("path", *configPath).Info("Tuning loaded")
	}
	config.SetTickRate(*tickRate)
	config.SetMaxParticles(*maxParticles)
	config.SetSeed(*seed)
	config.SetSeaLevel(*seaLevel)
	if *flat > 0 {
		config.SetFlat(true, *flat)
	}

	var sink ambient.AudioSink
	var speaker *audio.Speaker
	if *withAudio {
		speaker = audio.NewSpeaker(log)
		if err := speaker.Initialize(); err != nil {
			log.WithError(err).Warn("Audio disabled")
			speaker = nil
		} else {
			sink = speaker
		}
	}

	session, err := game.NewSession(game.Options{
		Scene:  *scene,
		Seed:   config.GetSeed(),
		Tuning: tuning,
		Audio:  sink,
		Log:    log,
		Trace:  *trace,
	})
	if err != nil {
		log.WithError(err).Fatal("Could not start the session")
	}

	app := game.NewApp(session, os.Stdout, log)
	app.StatusEvery = *statusEvery

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	closer.Bind(func() {
		cancel()
		if err := <-done; err != nil {
			log.WithError(err).Error("Run failed")
		}
		app.Summary()
		if *mapPath != "" {
			if err := saveMap(session, *mapPath); err != nil {
				log.WithError(err).Error("Could not save the feature map")
			}
		}
		session.Cleanup()
		if speaker != nil {
			speaker.Cleanup()
		}
	})

	if *console {
		c := debug.NewConsole(session.Driver, os.Stdout, log)
		go func() {
			if err := c.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Warn("Console stopped")
			}
		}()
	}

	go func() {
		done <- app.Run(ctx, *ticks)
		closer.Close()
	}()
	closer.Hold()
}

func saveMap(s *game.Session, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save map: %w", err)
	}
	return s.SaveMap(path, 64, 4)
}
