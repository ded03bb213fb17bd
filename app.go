package lumen

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
)

// ErrGraphics wraps failures of the windowing or graphics backend, as
// opposed to errors returned by the App itself.
var ErrGraphics = errors.New("lumen: graphics backend failed")

// App receives window events from Run. All methods are called on the main
// thread, one at a time.
type App interface {
	// ViewportEvent is called before the first frame and whenever the
	// window size changes. height is never 0.
	ViewportEvent(width, height int)
	// DrawEvent renders one frame.
	DrawEvent(s Surface)
	// MousePressEvent is called for button presses and wheel notches.
	MousePressEvent(e *MouseEvent)
}

// Updater is implemented by apps that advance state every tick.
type Updater interface {
	Update(dt float64) error
}

// Run opens a window and drives app until the window is closed, Escape is
// pressed, a test script quits, or app returns an error from Update. The
// app is handed to the loop explicitly; nothing is stored globally.
func Run(app App, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	g := newGame(app, cfg)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.TPS)

	g.log.WithFields(logrus.Fields{
		"title":  cfg.Title,
		"width":  cfg.Width,
		"height": cfg.Height,
	}).Info("starting")

	if err := ebiten.RunGame(g); err != nil {
		if g.appErr != nil {
			return g.appErr
		}
		return fmt.Errorf("%w: %w", ErrGraphics, err)
	}
	return nil
}

// game adapts an App to ebiten.Game.
type game struct {
	app App
	cfg RunConfig
	log logrus.FieldLogger

	surface *ebitenSurface
	input   inputState
	events  []MouseEvent
	queue   EventQueue
	runner  *TestRunner
	shots   screenshotQueue
	fps     *fpsOverlay
	debug   *debugLogger

	width, height int
	quit          bool
	appErr        error
}

func newGame(app App, cfg RunConfig) *game {
	log := cfg.Logger.WithField("component", "app")
	g := &game{
		app:     app,
		cfg:     cfg,
		log:     log,
		surface: newEbitenSurface(),
		runner:  cfg.TestRunner,
		shots:   screenshotQueue{dir: cfg.ScreenshotDir, log: log},
	}
	if cfg.ShowFPS {
		g.fps = &fpsOverlay{}
	}
	if cfg.Debug {
		g.debug = newDebugLogger(cfg.Logger.WithField("component", "render"))
	}
	return g
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshot("manual")
	}
	if g.runner != nil {
		g.runner.step(g)
	}

	g.events = g.events[:0]
	if e, ok := g.queue.next(); ok {
		g.events = append(g.events, e)
	} else {
		g.events = g.input.poll(g.events)
	}
	for i := range g.events {
		g.app.MousePressEvent(&g.events[i])
	}

	dt := 1.0 / float64(ebiten.TPS())
	if u, ok := g.app.(Updater); ok {
		if err := u.Update(dt); err != nil {
			g.appErr = err
			return err
		}
	}
	if g.fps != nil {
		g.fps.update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	g.surface.begin(screen)
	g.app.DrawEvent(g.surface)
	stats := g.surface.end()
	if g.debug != nil {
		g.debug.record(stats)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
	g.shots.flush(screen)
}

// Layout implements ebiten.Game. The screen matches the window in
// device-independent pixels; zero-height layouts (minimized windows) are not
// forwarded to the app.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.log.WithFields(logrus.Fields{"width": g.width, "height": g.height}).Debug("viewport")
		g.app.ViewportEvent(g.width, g.height)
	}
	return max(g.width, 1), max(g.height, 1)
}

// eventQueue, screenshot and requestQuit implement scriptHost.

func (g *game) eventQueue() *EventQueue { return &g.queue }

func (g *game) screenshot(label string) { g.shots.add(label) }

func (g *game) requestQuit() { g.quit = true }
