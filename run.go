package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/ambient-canvas/internal/audio"
	"github.com/iburimskiy/ambient-canvas/internal/audio/stream"
	"github.com/iburimskiy/ambient-canvas/internal/config"
	"github.com/iburimskiy/ambient-canvas/internal/frame"
	"github.com/iburimskiy/ambient-canvas/internal/game"
	"github.com/iburimskiy/ambient-canvas/internal/prefs"
	"github.com/iburimskiy/ambient-canvas/internal/scene"
	"github.com/iburimskiy/ambient-canvas/internal/telemetry"
	"github.com/iburimskiy/ambient-canvas/internal/term"
	"github.com/iburimskiy/ambient-canvas/internal/ui"
)

const fetchTimeout = 30 * time.Second

// app holds what both frontends share.
type app struct {
	cfg   *config.Config
	log   *slog.Logger
	amb   *audio.Ambience
	sched *frame.Scheduler
	rng   *rand.Rand
	trace *telemetry.Trace
}

func run(cfg *config.Config, inTerminal bool, logger *slog.Logger) error {
	store := openPrefs(cfg.Prefs.Path, logger)

	amb := audio.New(audio.Options{
		Source:  cfg.Audio.Source,
		Open:    stream.Opener(&http.Client{Timeout: fetchTimeout}),
		Store:   store,
		Preview: cfg.Derived.Preview,
		Logger:  logger.With("component", "audio"),
	})
	defer amb.Close()

	trace, err := telemetry.OpenTrace(cfg.Telemetry.TracePath)
	if err != nil {
		return fmt.Errorf("opening trace: %w", err)
	}
	defer func() {
		if trace == nil {
			return
		}
		logger.Info("frame trace", "path", cfg.Telemetry.TracePath, "summary", trace.Summary())
		if err := trace.Close(); err != nil {
			logger.Warn("failed to close trace", "error", err)
		}
	}()

	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info("starting",
		"mode", cfg.Derived.Mode,
		"seed", seed,
		"terminal", inTerminal,
		"volume", amb.Volume(),
	)

	a := &app{
		cfg:   cfg,
		log:   logger,
		amb:   amb,
		sched: frame.NewScheduler(),
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		trace: trace,
	}
	if inTerminal {
		return a.runTerminal()
	}
	return a.runWindow()
}

// onStep records every driver step into the trace. Only the first write
// failure is logged.
func (a *app) onStep() func(scene.Step) {
	if a.trace == nil {
		return nil
	}
	failed := false
	return func(s scene.Step) {
		err := a.trace.Record(telemetry.Frame{
			Index:      s.Frame,
			Mode:       s.Mode.String(),
			Particles:  s.Particles,
			StepMicros: telemetry.Micros(s.Elapsed),
		})
		if err != nil && !failed {
			failed = true
			a.log.Warn("failed to record frame", "error", err)
		}
	}
}

func (a *app) session(c scene.Options, width, height int) *scene.Session {
	c.Scheduler = a.sched
	c.Audio = a.amb
	c.Rand = a.rng
	c.Logger = a.log.With("component", "scene")
	c.OnStep = a.onStep()
	return scene.NewSession(c, width, height)
}

func (a *app) page(sc ui.Scene, d *game.Dialogs, width, height int) *ui.Page {
	reveal := ui.NewReveal(a.cfg.UI.RevealThreshold, a.cfg.Derived.RevealDelay, ui.DefaultSections()...)
	opts := ui.PageOptions{
		Scene:  sc,
		Sound:  a.amb,
		Theme:  ui.Theme{Swatches: a.cfg.Derived.Swatches, Active: a.cfg.Theme.Primary},
		Tilt:   a.cfg.UI.TiltMaxDegrees,
		Reveal: reveal,
	}
	if d != nil {
		opts.Prompt = d.AskEmail
		opts.Notify = d.ShowResult
		opts.Choose = d.ChooseAmbience
	}
	p := ui.NewPage(opts, width, height)
	p.SelectMode(a.cfg.Derived.Mode)
	return p
}

func (a *app) runWindow() error {
	w, h := a.cfg.Window.Width, a.cfg.Window.Height

	surface := game.NewSurface()
	session := a.session(scene.Options{Canvas: surface}, w, h)
	defer session.Close()

	var g *game.Game
	dialogs := &game.Dialogs{
		Logger: a.log.With("component", "dialogs"),
		OnError: func(err error) {
			if g != nil {
				g.SetError(err)
			}
		},
	}
	page := a.page(session, dialogs, w, h)

	g = game.New(game.Options{
		Session: session,
		Frames:  a.sched,
		Surface: surface,
		Page:    page,
		Meter:   a.amb,
		Logger:  a.log.With("component", "game"),
	})

	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetTPS(a.cfg.Window.TPS)
	if a.cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (a *app) runTerminal() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	cells := term.NewCells(term.CellWidth, term.CellHeight)
	w, h := cells.Logical(screen.Size())
	session := a.session(scene.Options{Canvas: cells}, w, h)
	defer session.Close()

	page := a.page(session, nil, w, h)
	status := func() string {
		state := "off"
		if a.amb.Playing() {
			state = "on"
		}
		return fmt.Sprintf(" %s | ambience %s %d%% | 1-5 mode  a ambience  p preview  +/- volume  q quit ",
			session.Mode(), state, int(a.amb.Volume()*100+0.5))
	}

	tui := term.NewApp(term.Options{
		Screen:   screen,
		Cells:    cells,
		Frames:   a.sched,
		Session:  session,
		Controls: page,
		Status:   status,
		Logger:   a.log.With("component", "term"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openPrefs opens the preferences file. A corrupt file is replaced on the
// next save; an unusable location falls back to memory.
func openPrefs(path string, logger *slog.Logger) prefs.Store {
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			logger.Warn("no user config directory, preferences kept in memory", "error", err)
			return prefs.NewMemory()
		}
		path = p
	}
	f, err := prefs.OpenFile(path)
	switch {
	case err == nil:
		return f
	case errors.Is(err, prefs.ErrCorrupt):
		logger.Warn("preferences unreadable, starting fresh", "path", path, "error", err)
		return prefs.NewFile(path)
	default:
		logger.Warn("preferences unavailable, kept in memory", "path", path, "error", err)
		return prefs.NewMemory()
	}
}
