package main

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/fighter/arena"
	"github.com/milk9111/fighter/clock"
	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/ecs/system"
	"github.com/milk9111/fighter/prefabs"
)

const (
	baseWidth  = 640
	baseHeight = 400
)

var background = color.NRGBA{R: 0x1a, G: 0x1c, B: 0x24, A: 0xff}

type Options struct {
	Match  string
	Arena  string
	Debug  bool
	Strict bool
	Watch  bool
}

type Game struct {
	logger *zap.Logger
	opts   Options

	match *prefabs.Match
	arena *arena.Arena
	world *ecs.World

	scheduler *ecs.Scheduler
	collision *system.CollisionSystem
	scripts   *system.ScriptSystem
	rounds    *system.RoundSystem
	hitFreeze *system.HitFreezeSystem

	stepper *clock.Stepper
	last    time.Time
	tick    uint64
	freeze  int
	camera  system.Camera

	debug   bool
	paused  bool
	pauseUI *pauseMenu
	picked  string

	watcher   *prefabs.Watcher
	clipboard clipboardWriter
}

func NewGame(ctx context.Context, logger *zap.Logger, opts Options) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{logger: logger, opts: opts, debug: opts.Debug}
	if err := g.load(ctx); err != nil {
		return nil, err
	}
	g.pauseUI = newPauseMenu(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/arenas", "prefabs/scripts")
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load reads the match and rebuilds the world from scratch. On failure the
// running match is left untouched.
func (g *Game) load(ctx context.Context) error {
	m, err := prefabs.LoadMatch(ctx, g.opts.Match)
	if err != nil {
		return err
	}
	if g.opts.Arena != "" {
		spec, err := prefabs.LoadSpec[prefabs.ArenaSpec]("arenas/" + g.opts.Arena + ".yaml")
		if err != nil {
			return err
		}
		m.Arena = spec
	}
	world, a, err := buildWorld(m, g.logger)
	if err != nil {
		return err
	}

	g.match, g.arena, g.world = m, a, world
	g.collision = system.NewCollisionSystem(g.logger, g.opts.Strict)
	g.scripts = system.NewScriptSystem(g.logger, nil)
	g.rounds = system.NewRoundSystem(g.logger, m.Spec.RoundResetFrames)
	g.hitFreeze = system.NewHitFreezeSystem(g.logger)
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(nil),
		g.scripts,
		system.NewFighterSystem(g.logger),
		system.NewMovementSystem(m.Spec.Gravity, m.Spec.MaxFall),
		g.collision,
		system.NewCombatSystem(g.logger),
		g.hitFreeze,
		g.rounds,
	)
	g.stepper = clock.NewStepper(m.Spec.TickRate, m.Spec.MaxCatchUpTicks)
	g.last = time.Time{}
	g.tick = 0
	g.freeze = 0
	g.camera = system.Camera{X: m.Spec.Camera.X, Top: m.Spec.Camera.Top, Zoom: m.Spec.Camera.Zoom}

	g.logger.Info("match loaded",
		zap.String("match", m.Spec.Name),
		zap.String("arena", a.Name),
		zap.Int("fighters", len(m.Spec.Fighters)),
		zap.Int("tick_rate", m.Spec.TickRate),
	)
	return nil
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()
	g.handleDebugKeys()

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	n := g.stepper.Advance(now.Sub(g.last))
	g.last = now

	dt := g.stepper.Seconds()
	for i := 0; i < n; i++ {
		if g.freeze > 0 {
			g.freeze--
			continue
		}
		g.scheduler.Update(g.world, dt)
		g.freeze = max(g.freeze, g.hitFreeze.Take())
		g.tick++
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.pauseUI.refresh(g)
	}
	// Time spent in the menu must not turn into a burst of ticks.
	g.last = time.Time{}
}

func (g *Game) resetRound() {
	g.rounds.Reset(g.world)
	g.hitFreeze.Take()
	g.freeze = 0
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err := <-g.watcher.Errors:
			if err != nil {
				g.logger.Warn("watch", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	g.logger.Info("prefab changed", zap.String("path", change.Path), zap.Stringer("kind", change.Kind))
	if change.Kind == prefabs.ChangeScript {
		g.scripts.Invalidate()
		return
	}
	if err := g.load(context.Background()); err != nil {
		g.logger.Warn("reload failed, keeping current match", zap.String("path", change.Path), zap.Error(err))
	}
}

func (g *Game) handleDebugKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copySnapshot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.resetRound()
	}
	if g.debug && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := g.camera.ToWorld(ebiten.CursorPosition())
		g.picked = ""
		if e, h, ok := system.Pick(g.world, x, y, g.logger); ok {
			g.picked = fmt.Sprintf("%s %s %s", e, h.Kind, h.World())
			g.logger.Debug("picked", zap.Stringer("entity", e), zap.Stringer("hitbox", h.ID))
		}
	}
}

func (g *Game) copySnapshot() {
	data, err := takeSnapshot(g.world, g.tick, g.rounds.Round()).YAML()
	if err != nil {
		g.logger.Error("snapshot", zap.Error(err))
		return
	}
	if err := g.clipboard.Write(data); err != nil {
		g.logger.Warn("snapshot not copied", zap.Error(err))
		return
	}
	g.logger.Info("snapshot copied", zap.Uint64("tick", g.tick), zap.Int("bytes", len(data)))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	system.DrawTiles(g.world, screen, g.camera, g.arena.Color)
	system.DrawHitboxes(g.world, screen, g.camera)

	if g.debug {
		system.DrawStats(screen, g.collision.Stats(), system.StateHash(g.world), g.rounds)
		if g.picked != "" {
			ebitenutil.DebugPrintAt(screen, g.picked, 10, baseHeight-20)
		}
	} else {
		g.drawHUD(screen)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	x := 10
	ecs.ForEach2(g.world, component.FighterComponent.Kind(), component.HealthComponent.Kind(), func(_ ecs.Entity, f *component.Fighter, h *component.Health) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d/%d", f.Name, h.Current, h.Initial), x, 10)
		x += 140
	})
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("round %d", g.rounds.Round()), baseWidth-80, 10)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
