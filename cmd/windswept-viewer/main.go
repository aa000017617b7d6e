package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
	"github.com/xlab/closer"

	"windswept/internal/ambient"
	"windswept/internal/audio"
	"windswept/internal/config"
	"windswept/internal/game"
	"windswept/internal/graphics"
	"windswept/internal/viewer"
)

func init() {
	runtime.LockOSThread()
}

var (
	scene      = flag.String("scene", game.ScenePlains, "scene to run: plains or terrain")
	seed       = flag.Int64("seed", 1, "terrain and effect seed")
	configPath = flag.String("config", "", "YAML tuning file laid over the defaults")
	tickRate   = flag.Int("tickrate", 20, "ticks per second, 0 runs one tick per frame")
	width      = flag.Int("width", 1280, "window width")
	height     = flag.Int("height", 720, "window height")
	fps        = flag.Int("fps", 120, "frame cap, 0 leaves frames uncapped")
	radius     = flag.Int("radius", 48, "terrain columns meshed around the camera")
	logLevel   = flag.String("log-level", "info", "panic, fatal, error, warn, info, debug or trace")
	withAudio  = flag.Bool("audio", true, "play the ambient channels on the default output device")
	mapDir     = flag.String("map-dir", ".", "directory F2 writes feature maps to")
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
	}
	config.SetTickRate(*tickRate)
	config.SetSeed(*seed)

	if err := glfw.Init(); err != nil {
		log.WithError(err).Fatal("Could not initialize glfw")
	}
	window, err := graphics.SetupWindow(*width, *height, "windswept")
	if err != nil {
		glfw.Terminate()
		log.WithError(err).Fatal("Could not open the window")
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
	})
	if err != nil {
		glfw.Terminate()
		log.WithError(err).Fatal("Could not start the session")
	}

	fbW, fbH := window.GetFramebufferSize()
	v, err := viewer.New(window, session, viewer.Options{
		Width:         fbW,
		Height:        fbH,
		FPS:           *fps,
		TerrainRadius: *radius,
		MapDir:        *mapDir,
		Log:           log,
	})
	if err != nil {
		glfw.Terminate()
		log.WithError(err).Fatal("Could not build the viewer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-stopped
		game.NewApp(session, os.Stdout, log).Summary()
		session.Cleanup()
		if speaker != nil {
			speaker.Cleanup()
		}
	})

	if err := v.Run(ctx); err != nil {
		log.WithError(err).Error("Viewer stopped")
	}
	v.Dispose()
	window.Destroy()
	glfw.Terminate()
	close(stopped)
	closer.Close()
}
