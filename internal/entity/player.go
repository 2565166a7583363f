// Package entity provides the player and the monsters they meet.
package entity

import (
	"github.com/samdwyer/dungeoncrawl/internal/combat"
)

// Starting stats for a fresh run.
const (
	StartingHP        = 100
	StartingDamageMin = 2
	StartingDamageMax = 12
	StartingLevel     = 1
)

// Player is the adventurer exploring the maze.
type Player struct {
	X, Y   int  // Current position in the dungeon
	Symbol rune // Display symbol

	HP, MaxHP            int
	XP                   int
	Level                int
	Potions              int
	DamageMin, DamageMax int
	Dodge                int // Percent chance to negate a hit; grows without a cap
}

// NewPlayer creates a level 1 player at the given position.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:         x,
		Y:         y,
		Symbol:    '@',
		HP:        StartingHP,
		MaxHP:     StartingHP,
		Level:     StartingLevel,
		DamageMin: StartingDamageMin,
		DamageMax: StartingDamageMax,
	}
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// SetPosition places the player at an absolute position.
func (p *Player) SetPosition(x, y int) {
	p.X = x
	p.Y = y
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// SpendPotion consumes one potion, reporting false if there are none.
func (p *Player) SpendPotion() bool {
	if p.Potions <= 0 {
		return false
	}
	p.Potions--
	return true
}

// =============================================================================
// Combatant interface implementation
// =============================================================================

// GetName returns the player's display name.
func (p *Player) GetName() string { return "You" }

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// GetHP returns current HP.
func (p *Player) GetHP() int { return p.HP }

// DamageRange returns the inclusive attack roll bounds.
func (p *Player) DamageRange() (int, int) { return p.DamageMin, p.DamageMax }

// GetDodge returns the dodge percentage.
func (p *Player) GetDodge() int { return p.Dodge }

// GainXP adds experience. Level thresholds are handled by progression.
func (p *Player) GainXP(amount int) { p.XP += amount }

// AddPotions adds n potions to the inventory.
func (p *Player) AddPotions(n int) { p.Potions += n }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Player) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.HP {
		actual = p.HP
	}
	p.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.HP+actual > p.MaxHP {
		actual = p.MaxHP - p.HP
	}
	p.HP += actual
	return actual
}

// Ensure Player implements combat.Hero
var _ combat.Hero = (*Player)(nil)
