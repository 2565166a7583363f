package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/progression"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const maxChoiceLength = 16

// Game is the terminal front end: it turns key presses into Session intents
// and redraws after each one.
type Game struct {
	cfg      Config
	registry *gamedata.EnemyRegistry
	screen   *ui.Screen
	renderer *ui.Renderer
	session  *Session

	input   []rune // level-up choice being typed
	status  string
	running bool
}

// New creates a new game instance on a fresh terminal screen.
func New(cfg Config, registry *gamedata.EnemyRegistry) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(cfg, registry, screen), nil
}

func newGame(cfg Config, registry *gamedata.EnemyRegistry, screen *ui.Screen) *Game {
	return &Game{
		cfg:      cfg,
		registry: registry,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		running:  true,
	}
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	if err := g.init(ctx); err != nil {
		return err
	}

	for g.running {
		g.render()
		g.handleInput(ctx)
	}
	return nil
}

// init seeds the RNG and starts the session (traced).
func (g *Game) init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	seed := g.cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = rng.NewSeed(); err != nil {
			return err
		}
	}

	session, err := NewSession(ctx, g.cfg, g.registry, rng.New(seed))
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.session = session

	d := session.Dungeon()
	span.SetAttributes(
		attribute.Int64("seed", seed),
		attribute.Int("dungeon.floor_count", d.FloorCount()),
		attribute.Int("player.start_x", g.cfg.OriginX),
		attribute.Int("player.start_y", g.cfg.OriginY),
		attribute.Int("enemy_types", g.registry.Count()),
	)
	logger.Log.WithField("seed", seed).Info("Game initialized")
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized.
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	}

	if g.session.State() == StateLevelUp {
		g.handleChoiceKey(ctx, ev)
		return
	}
	g.status = ""

	switch ev.Key() {
	case tcell.KeyUp:
		g.session.Move(ctx, world.North)
	case tcell.KeyDown:
		g.session.Move(ctx, world.South)
	case tcell.KeyLeft:
		g.session.Move(ctx, world.West)
	case tcell.KeyRight:
		g.session.Move(ctx, world.East)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			g.session.Move(ctx, world.North)
		case 's', 'S':
			g.session.Move(ctx, world.South)
		case 'a', 'A':
			g.session.Move(ctx, world.West)
		case 'd', 'D':
			g.session.Move(ctx, world.East)
		case 'p', 'P':
			if err := g.session.UsePotion(ctx); errors.Is(err, ErrNoPotions) {
				g.status = "No potions left!"
			}
		case ' ':
			// Attacking outside combat does nothing.
			_, _ = g.session.Attack(ctx)
		case 'q', 'Q':
			g.running = false
		}
	}
}

// handleChoiceKey edits and submits the level-up choice.
func (g *Game) handleChoiceKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		choice := string(g.input)
		g.input = g.input[:0]
		if err := g.session.Allocate(ctx, choice); errors.Is(err, progression.ErrInvalidChoice) {
			g.status = "Invalid choice"
			return
		}
		g.status = ""
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.input) > 0 {
			g.input = g.input[:len(g.input)-1]
		}
	case tcell.KeyRune:
		if len(g.input) < maxChoiceLength {
			g.input = append(g.input, ev.Rune())
		}
	}
}

// render builds a frame from the session snapshot.
func (g *Game) render() {
	g.renderer.Render(g.frame())
}

func (g *Game) frame() ui.Frame {
	snap := g.session.Snapshot()
	p := g.session.Player()

	f := ui.Frame{
		Dungeon:      g.session.Dungeon(),
		PlayerX:      snap.X,
		PlayerY:      snap.Y,
		PlayerSymbol: p.Symbol,
		Sidebar:      sidebarLines(snap),
		Log:          g.session.Log(),
		Status:       g.status,
	}

	if e := g.session.Enemy(); e != nil {
		f.Sidebar = append(f.Sidebar, ui.Line{
			Text:  fmt.Sprintf("%c %s  HP %d/%d", e.Symbol, e.Name, e.HP, e.MaxHP),
			Style: tcell.StyleDefault.Foreground(e.Color()).Bold(true),
		})
	}

	switch snap.State {
	case StateLevelUp:
		f.Prompt = fmt.Sprintf("You leveled up! %d points to spend. Choose hp, dmg, or dog: %s",
			snap.PendingPoints, string(g.input))
	case StateCombat:
		f.Prompt = "[space] attack  [p] potion  [q] quit"
	default:
		f.Prompt = "[wasd/arrows] move  [p] potion  [q] quit"
	}
	return f
}

func sidebarLines(snap Snapshot) []ui.Line {
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	hpStyle := plain
	if snap.HP*4 <= snap.MaxHP {
		hpStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	}

	return []ui.Line{
		{Text: fmt.Sprintf("Floor %d", snap.Depth), Style: plain.Bold(true)},
		{Text: fmt.Sprintf("HP      %d/%d", snap.HP, snap.MaxHP), Style: hpStyle},
		{Text: fmt.Sprintf("Level   %d", snap.Level), Style: plain},
		{Text: fmt.Sprintf("XP      %d/%d", snap.XP, snap.RequiredXP), Style: plain},
		{Text: fmt.Sprintf("Damage  %d-%d", snap.DamageMin, snap.DamageMax), Style: plain},
		{Text: fmt.Sprintf("Dodge   %d%%", snap.Dodge), Style: plain},
		{Text: fmt.Sprintf("Potions %d", snap.Potions), Style: plain},
		{Text: "run " + ui.Truncate(snap.RunID, 8), Style: dim},
		{},
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
