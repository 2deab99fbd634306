package term

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/ambient-canvas/internal/scene"
)

const (
	tick       = 16 * time.Millisecond // ~60 FPS
	volumeStep = 0.05
)

// Controls are the page actions reachable from the keyboard.
type Controls interface {
	SelectMode(m scene.Mode)
	ToggleAmbience()
	NudgeVolume(delta float64)
	PreviewAmbience()
}

// Frames runs pending animation frames.
type Frames interface {
	Run(now time.Duration) int
}

// Options configures an App. Every field but Logger and Status is required.
type Options struct {
	Screen   tcell.Screen
	Cells    *Cells
	Frames   Frames
	Session  *scene.Session
	Controls Controls
	// Status returns the text drawn on the top row.
	Status func() string
	Logger *slog.Logger
}

// App drives a Session from a tcell event loop.
type App struct {
	screen   tcell.Screen
	cells    *Cells
	frames   Frames
	session  *scene.Session
	controls Controls
	status   func() string
	log      *slog.Logger
}

func NewApp(opts Options) *App {
	a := &App{
		screen:   opts.Screen,
		cells:    opts.Cells,
		frames:   opts.Frames,
		session:  opts.Session,
		controls: opts.Controls,
		status:   opts.Status,
		log:      opts.Logger,
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	return a
}

// Run polls input and redraws until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// Screen finalized.
				return
			}
			eventChan <- ev
		}
	}()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !a.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			a.Tick(time.Since(start))
		}
	}
}

// Tick runs the due frames and presents them.
func (a *App) Tick(now time.Duration) {
	a.frames.Run(now)
	a.Draw()
	a.screen.Show()
}

// Draw composes the grid and the status row without presenting.
func (a *App) Draw() {
	a.cells.Flush(a.screen, a.session.Backdrop())
	if a.status == nil {
		return
	}
	w, _ := a.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for i, r := range []rune(a.status()) {
		if i >= w {
			break
		}
		a.screen.SetContent(i, 0, r, nil, style)
	}
}

// HandleEvent applies one input event and reports whether to keep running.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return false
		case '1', '2', '3', '4', '5':
			a.controls.SelectMode(scene.Modes()[r-'1'])
		case 'a', 'A':
			a.controls.ToggleAmbience()
		case 'p', 'P':
			a.controls.PreviewAmbience()
		case '+', '=':
			a.controls.NudgeVolume(volumeStep)
		case '-', '_':
			a.controls.NudgeVolume(-volumeStep)
		}

	case *tcell.EventResize:
		a.screen.Sync()
		cols, rows := ev.Size()
		a.session.Resize(a.cells.Logical(cols, rows))
		a.log.Debug("terminal resized", "cols", cols, "rows", rows)
	}
	return true
}
