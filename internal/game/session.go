package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/progression"
	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	// Encounters are only rolled while the step counter is inside this window.
	EncounterWindowMin = 7
	EncounterWindowMax = 12

	// HostileChance is the probability that a fired encounter is an enemy
	// rather than a potion.
	HostileChance = 0.5

	// PotionHeal is the HP restored by one potion, capped at MaxHP.
	PotionHeal = 20

	maxLogEntries = 200
)

var (
	// ErrNoPotions is returned by UsePotion with an empty inventory.
	ErrNoPotions = errors.New("no potions left")
	// ErrNotInCombat is returned by Attack when no enemy is engaged.
	ErrNotInCombat = errors.New("not in combat")
	// ErrChoicePending is returned for intents made while stat points await allocation.
	ErrChoicePending = errors.New("stat points must be allocated first")
)

// Session owns all mutable state of one play session: the current floor, the
// player, the engaged enemy and the combat log. It is not safe for concurrent
// use.
type Session struct {
	cfg      Config
	rng      rng.Source
	resolver *combat.Resolver
	registry *gamedata.EnemyRegistry
	tracker  progression.Tracker

	dungeon *world.Dungeon
	player  *entity.Player
	enemy   *entity.Enemy

	steps int
	depth int
	runID uuid.UUID
	log   []string // oldest first
}

// NewSession validates cfg and starts a fresh run on a newly generated floor.
func NewSession(ctx context.Context, cfg Config, registry *gamedata.EnemyRegistry, src rng.Source) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if registry == nil || registry.Count() == 0 {
		return nil, errors.New("session: encounter table is empty")
	}

	s := &Session{
		cfg:      cfg,
		rng:      src,
		resolver: combat.NewResolver(src),
		registry: registry,
	}
	if err := s.startRun(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// startRun resets every piece of run state and generates floor 1.
func (s *Session) startRun(ctx context.Context) error {
	s.runID = uuid.New()
	s.player = entity.NewPlayer(s.cfg.OriginX, s.cfg.OriginY)
	s.enemy = nil
	s.steps = 0
	s.depth = 1
	s.tracker.Reset()
	s.log = nil

	if err := s.generateFloor(ctx); err != nil {
		return err
	}
	s.logEntry().Info("New run started")
	return nil
}

// generateFloor replaces the dungeon and puts the player back on the origin.
func (s *Session) generateFloor(ctx context.Context) error {
	d, err := world.NewDungeon(s.cfg.Width, s.cfg.Height, s.rng)
	if err != nil {
		return fmt.Errorf("new floor: %w", err)
	}
	if err := d.Generate(ctx, s.cfg.OriginX, s.cfg.OriginY); err != nil {
		return fmt.Errorf("new floor: %w", err)
	}
	s.dungeon = d
	s.player.SetPosition(s.cfg.OriginX, s.cfg.OriginY)
	return nil
}

// State reports which intents the session currently accepts.
func (s *Session) State() State {
	switch {
	case s.tracker.Pending() > 0:
		return StateLevelUp
	case s.enemy != nil:
		return StateCombat
	default:
		return StateExplore
	}
}

// Move walks the player one cell. Blocked moves change nothing.
func (s *Session) Move(ctx context.Context, dir world.Direction) MoveOutcome {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.move")
	defer span.End()

	outcome := s.move(ctx, dir)

	span.SetAttributes(
		attribute.String("direction", dir.String()),
		attribute.String("outcome", outcome.String()),
		attribute.Int("steps", s.steps),
		attribute.Int("depth", s.depth),
		attribute.String("run_id", s.runID.String()),
	)
	return outcome
}

func (s *Session) move(ctx context.Context, dir world.Direction) MoveOutcome {
	if s.State() != StateExplore {
		return MoveBlocked
	}

	dx, dy := dir.Delta()
	nx, ny := s.player.X+dx, s.player.Y+dy
	if !s.dungeon.IsPassable(nx, ny) {
		return MoveBlocked
	}

	s.player.SetPosition(nx, ny)
	s.steps++

	if s.dungeon.IsExit(nx, ny) {
		s.descend(ctx)
		return MoveExit
	}
	if s.checkEncounter() {
		return MoveEncounter
	}
	return MoveFree
}

// descend moves to a brand-new floor. Stats, inventory and the step counter
// carry over.
func (s *Session) descend(ctx context.Context) {
	s.addLog("You found the entrance to the next floor!")
	s.depth++
	if err := s.generateFloor(ctx); err != nil {
		// Config was validated in NewSession, so this means a bug.
		s.logEntry().WithError(err).Error("Failed to generate next floor")
		return
	}
	s.logEntry().WithField("floor_count", s.dungeon.FloorCount()).Info("Descended to next floor")
}

// checkEncounter rolls an encounter when the step counter is in the window.
// A fired encounter always resets the counter.
func (s *Session) checkEncounter() bool {
	if s.steps < EncounterWindowMin || s.steps > EncounterWindowMax {
		return false
	}

	if rng.Chance(s.rng, HostileChance) {
		def := s.registry.SpawnRandom(s.rng)
		s.enemy = entity.NewEnemyFromDef(def)
		s.addLog(fmt.Sprintf("Encountered a %s with %d HP!", s.enemy.Name, s.enemy.HP))
		s.logEntry().WithFields(logrus.Fields{
			"enemy":    s.enemy.ID(),
			"enemy_hp": s.enemy.HP,
			"steps":    s.steps,
		}).Info("Enemy encountered")
	} else {
		s.player.AddPotions(1)
		s.addLog("You found a potion!")
		s.logEntry().WithField("potions", s.player.Potions).Debug("Potion found")
	}

	s.steps = 0
	return true
}

// reset starts over after a defeat: new run ID, fresh player, new floor.
func (s *Session) reset(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "session.reset")
	defer span.End()

	previous := s.runID
	span.SetAttributes(
		attribute.String("previous_run_id", previous.String()),
		attribute.Int("depth_reached", s.depth),
		attribute.Int("level_reached", s.player.Level),
	)

	if err := s.startRun(ctx); err != nil {
		s.logEntry().WithError(err).Error("Failed to reset run")
		return
	}
	span.SetAttributes(attribute.String("run_id", s.runID.String()))
}

// addLog appends one combat log line, dropping the oldest past the cap.
func (s *Session) addLog(msg string) {
	s.log = append(s.log, msg)
	if len(s.log) > maxLogEntries {
		s.log = s.log[len(s.log)-maxLogEntries:]
	}
}

func (s *Session) logEntry() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"run_id": s.runID.String(),
		"depth":  s.depth,
	})
}

// Log returns the combat log, most recent entry first.
func (s *Session) Log() []string {
	out := make([]string, len(s.log))
	for i, msg := range s.log {
		out[len(s.log)-1-i] = msg
	}
	return out
}

// Dungeon returns the current floor.
func (s *Session) Dungeon() *world.Dungeon {
	return s.dungeon
}

// Player returns the player. Callers must treat it as read-only.
func (s *Session) Player() *entity.Player {
	return s.player
}

// Enemy returns the engaged enemy, or nil outside combat.
func (s *Session) Enemy() *entity.Enemy {
	return s.enemy
}

// Snapshot is a read-only view of the session for display.
type Snapshot struct {
	State         State
	RunID         string
	Depth         int
	Steps         int
	X, Y          int
	HP, MaxHP     int
	XP            int
	RequiredXP    int
	Level         int
	Potions       int
	DamageMin     int
	DamageMax     int
	Dodge         int
	PendingPoints int

	InCombat    bool
	EnemyName   string
	EnemyHP     int
	EnemyMaxHP  int
	EnemyDamage [2]int
	EnemyXP     int
}

// Snapshot copies the values the front end displays.
func (s *Session) Snapshot() Snapshot {
	p := s.player
	snap := Snapshot{
		State:         s.State(),
		RunID:         s.runID.String(),
		Depth:         s.depth,
		Steps:         s.steps,
		X:             p.X,
		Y:             p.Y,
		HP:            p.HP,
		MaxHP:         p.MaxHP,
		XP:            p.XP,
		RequiredXP:    progression.RequiredXP(p.Level),
		Level:         p.Level,
		Potions:       p.Potions,
		DamageMin:     p.DamageMin,
		DamageMax:     p.DamageMax,
		Dodge:         p.Dodge,
		PendingPoints: s.tracker.Pending(),
	}
	if s.enemy != nil {
		snap.InCombat = true
		snap.EnemyName = s.enemy.Name
		snap.EnemyHP = s.enemy.HP
		snap.EnemyMaxHP = s.enemy.MaxHP
		snap.EnemyDamage = [2]int{s.enemy.DamageMin, s.enemy.DamageMax}
		snap.EnemyXP = s.enemy.XPReward
	}
	return snap
}
