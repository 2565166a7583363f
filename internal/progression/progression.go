// Package progression tracks experience thresholds and level-up stat points.
package progression

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// XPPerLevel scales the linear curve: level N needs N*XPPerLevel to advance.
	XPPerLevel = 50
	// PointsPerLevel is the number of stat points granted per level gained.
	PointsPerLevel = 2

	hpPerPoint     = 5
	damagePerPoint = 1
	dodgePerPoint  = 5
)

var (
	// ErrInvalidChoice is returned for an unrecognized stat; no point is spent.
	ErrInvalidChoice = errors.New("invalid choice: pick hp, dmg, or dog")
	// ErrNoPendingPoints is returned when allocating with nothing to spend.
	ErrNoPendingPoints = errors.New("no stat points to allocate")
)

// Stat is a level-up allocation target.
type Stat int

const (
	StatHP Stat = iota
	StatDamage
	StatDodge
)

// String returns the choice keyword for the stat.
func (s Stat) String() string {
	switch s {
	case StatHP:
		return "hp"
	case StatDamage:
		return "dmg"
	case StatDodge:
		return "dog"
	default:
		return "unknown"
	}
}

var folder = cases.Fold()

// ParseStat maps a typed choice to a Stat, ignoring case and surrounding space.
func ParseStat(choice string) (Stat, error) {
	switch folder.String(strings.TrimSpace(choice)) {
	case "hp":
		return StatHP, nil
	case "dmg":
		return StatDamage, nil
	case "dog":
		return StatDodge, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}
}

// RequiredXP returns the XP needed to advance past level.
func RequiredXP(level int) int {
	return level * XPPerLevel
}

// Tracker holds stat points earned but not yet allocated.
// While Pending is non-zero the game waits on Allocate.
type Tracker struct {
	pending int
}

// Pending returns the number of unallocated stat points.
func (t *Tracker) Pending() int {
	return t.pending
}

// Reset drops any unallocated points.
func (t *Tracker) Reset() {
	t.pending = 0
}

// Check levels the player up as many times as their XP allows, carrying the
// excess over, and returns every level reached. It is a no-op once
// XP < RequiredXP(Level).
func (t *Tracker) Check(ctx context.Context, p *entity.Player) []int {
	var reached []int
	for p.XP >= RequiredXP(p.Level) {
		p.XP -= RequiredXP(p.Level)
		p.Level++
		t.pending += PointsPerLevel
		reached = append(reached, p.Level)
	}

	if len(reached) > 0 {
		_, span := telemetry.Tracer("progression").Start(ctx, "progression.level_up")
		span.SetAttributes(
			attribute.Int("player.level", p.Level),
			attribute.Int("player.xp", p.XP),
			attribute.Int("levels_gained", len(reached)),
			attribute.Int("points_pending", t.pending),
		)
		span.End()
	}
	return reached
}

// Allocate spends one pending point on the typed choice. Invalid choices are
// rejected without spending. Once the last point is spent the level check runs
// again, and any further levels reached are returned.
func (t *Tracker) Allocate(ctx context.Context, p *entity.Player, choice string) ([]int, error) {
	if t.pending == 0 {
		return nil, ErrNoPendingPoints
	}
	stat, err := ParseStat(choice)
	if err != nil {
		return nil, err
	}

	Apply(p, stat)
	t.pending--

	if t.pending == 0 {
		return t.Check(ctx, p), nil
	}
	return nil, nil
}

// Apply grants one point of stat to the player.
func Apply(p *entity.Player, stat Stat) {
	switch stat {
	case StatHP:
		p.MaxHP += hpPerPoint
		p.HP += hpPerPoint
	case StatDamage:
		p.DamageMin += damagePerPoint
		p.DamageMax += damagePerPoint
	case StatDodge:
		p.Dodge += dodgePerPoint
	}
}
