package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/gamedata"
)

// Enemy is one encounter's opponent, built fresh from an archetype.
type Enemy struct {
	Def       *gamedata.EnemyDef // Archetype this instance was copied from
	Name      string
	Symbol    rune
	HP        int
	MaxHP     int
	DamageMin int
	DamageMax int
	XPReward  int
}

// NewEnemyFromDef creates an enemy with the archetype's base stats, unscaled.
func NewEnemyFromDef(def *gamedata.EnemyDef) *Enemy {
	return &Enemy{
		Def:       def,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		HP:        def.HP,
		MaxHP:     def.HP,
		DamageMin: def.DamageMin,
		DamageMax: def.DamageMax,
		XPReward:  def.XP,
	}
}

// Color returns the tcell color for this enemy, dimmed as it loses HP.
func (e *Enemy) Color() tcell.Color {
	base := tcell.ColorPurple
	if e.Def != nil {
		base = e.Def.TCellColor()
	}
	if e.MaxHP <= 0 {
		return base
	}
	lost := float64(e.MaxHP-e.HP) / float64(e.MaxHP)
	return gamedata.Dim(base, lost*0.6)
}

// ID returns the archetype identifier.
func (e *Enemy) ID() string {
	if e.Def != nil {
		return e.Def.ID
	}
	return e.Name
}

// GetName returns the enemy's name.
func (e *Enemy) GetName() string { return e.Name }

// IsAlive returns true if the enemy has HP remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// GetHP returns current HP.
func (e *Enemy) GetHP() int { return e.HP }

// DamageRange returns the inclusive counter-attack bounds.
func (e *Enemy) DamageRange() (int, int) { return e.DamageMin, e.DamageMax }

// GetXPReward returns the XP granted on defeat.
func (e *Enemy) GetXPReward() int { return e.XPReward }

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > e.HP {
		actual = e.HP
	}
	e.HP -= actual
	return actual
}

// Ensure Enemy implements combat.Foe
var _ combat.Foe = (*Enemy)(nil)
