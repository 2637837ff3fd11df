package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/vscroll/internal/audio"
	"github.com/ingyamilmolinar/vscroll/internal/config"
	"github.com/ingyamilmolinar/vscroll/internal/engine"
	game_log "github.com/ingyamilmolinar/vscroll/internal/log"
	"github.com/ingyamilmolinar/vscroll/internal/rng"
	"github.com/ingyamilmolinar/vscroll/internal/scene"
	"github.com/ingyamilmolinar/vscroll/internal/scroll"
	"github.com/ingyamilmolinar/vscroll/internal/ui"
)

var (
	configPath = flag.String("config", "", "JSON config file layered over the defaults")
	seed       = flag.Int64("seed", 0, "layout seed, 0 picks one from the clock")
	logLevel   = flag.String("log-level", "", "DEBUG, INFO, WARN, ERROR or NONE")
	gain       = flag.Float64("gain", -1, "master gain in [0, 1]")
	headless   = flag.Bool("headless", false, "run the scene without a window")
	renderPath = flag.String("render", "", "render audio offline to this WAV file and exit")
	seconds    = flag.Float64("seconds", 10, "length of -render output or -headless run, 0 runs headless until interrupted")
	dumpDir    = flag.String("dump-dir", "", "write every column's waveform to this directory")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vscroll:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, ok := game_log.LevelFromString(cfg.Log.Level)
	logger := game_log.New(os.Stderr, level)
	if !ok {
		logger.Warnf("unknown log level %q, using %s", cfg.Log.Level, level)
	}

	src := rng.New(cfg.Seed)
	logger.Infof("seed %d", src.Seed())

	mix := audio.NewEngine(beep.SampleRate(cfg.Audio.SampleRate), cfg.Audio.Gain, logger)
	vp := scroll.Viewport{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)}

	if *renderPath != "" {
		return renderOffline(cfg, vp, mix, src, logger)
	}

	sc, err := scene.New(cfg.Scene, vp, mix, src, logger)
	if err != nil {
		return err
	}
	if *dumpDir != "" {
		if err := sc.DumpWaveforms(*dumpDir); err != nil {
			return err
		}
	}

	if cfg.Audio.Enabled {
		if err := mix.Open(); err != nil {
			logger.Errorf("audio disabled: %v", err)
		} else {
			defer mix.Close()
		}
	}

	if *headless {
		return runHeadless(cfg, sc, logger)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	return ebiten.RunGame(ui.New(cfg.Window, sc, mix, logger))
}

// errBadFlag is wrapped by applyFlags for flag values no mode can use.
var errBadFlag = errors.New("invalid flag")

func applyFlags(cfg *config.Config) error {
	if *seconds < 0 || math.IsNaN(*seconds) {
		return fmt.Errorf("-seconds %v must not be negative: %w", *seconds, errBadFlag)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *gain >= 0 {
		cfg.Audio.Gain = *gain
	}
	return nil
}

// renderOffline steps a scene on the synthetic clock and writes the mix.
func renderOffline(cfg config.Config, vp scroll.Viewport, mix *audio.Engine, src *rng.Source, logger *game_log.Logger) error {
	sc, err := scene.New(cfg.Scene, vp, mix, src, logger, scene.WithClock(func() time.Time { return engine.Epoch }))
	if err != nil {
		return err
	}
	if *dumpDir != "" {
		if err := sc.DumpWaveforms(*dumpDir); err != nil {
			return err
		}
	}
	frames := engine.FramesFor(time.Duration(*seconds * float64(time.Second)))
	out := engine.RenderOffline(sc, mix, frames)
	if err := audio.WriteWAVFile(*renderPath, mix.SampleRate(), out); err != nil {
		return err
	}
	st := sc.Stats()
	logger.Infof("rendered %s: %d frames, %d spawns, %v", *renderPath, st.Frames, st.Spawns, mix.SampleRate().D(len(out)))
	return nil
}

func runHeadless(cfg config.Config, sc *scene.Scene, logger *game_log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *seconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*seconds*float64(time.Second)))
		defer cancel()
	}

	r := engine.NewRunner(ctx, sc, cfg.Window.TPS, logger)
	defer r.Close()
	report := time.NewTicker(time.Second)
	defer report.Stop()
	var last engine.Event
	for {
		select {
		case ev := <-r.Events:
			last = ev
		case <-report.C:
			logger.Infof("frame %d: %d glyphs, %d spawns, %d culls", last.Frame, last.Stats.Glyphs, last.Stats.Spawns, last.Stats.Culls)
		case <-r.Done():
			logger.Infof("stopped after %d frames", last.Frame)
			return nil
		}
	}
}
