// Package combat resolves attack exchanges between the player and an enemy.
package combat

import (
	"fmt"

	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

const (
	// LootChance is the probability a defeated enemy drops something.
	LootChance = 0.10
	// LootXP is the flat XP granted by an experience potion drop.
	LootXP = 10
)

// Combatant is the interface for anything that trades blows.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	DamageRange() (lo, hi int)
	TakeDamage(amount int) int // Returns actual damage taken
}

// Hero is the player's side of an exchange.
type Hero interface {
	Combatant
	GetDodge() int // Percent chance to fully negate a hit
	GainXP(amount int)
	AddPotions(n int)
}

// Foe is the enemy's side of an exchange.
type Foe interface {
	Combatant
	GetXPReward() int
}

// Outcome is the state of combat after an exchange.
type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeEnemyDefeated
	OutcomePlayerDefeated
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeEnemyDefeated:
		return "enemy_defeated"
	case OutcomePlayerDefeated:
		return "player_defeated"
	default:
		return "unknown"
	}
}

// Loot is what a defeated enemy dropped.
type Loot int

const (
	LootNone Loot = iota
	LootPotion
	LootExperience
)

// String returns a human-readable loot name.
func (l Loot) String() string {
	switch l {
	case LootNone:
		return "none"
	case LootPotion:
		return "potion"
	case LootExperience:
		return "experience"
	default:
		return "unknown"
	}
}

// ExchangeResult contains everything that happened in one exchange.
type ExchangeResult struct {
	Outcome      Outcome
	PlayerDamage int  // Rolled damage dealt by the hero
	EnemyDamage  int  // Rolled counter-attack damage (0 if the enemy died first)
	Dodged       bool // Counter-attack fully negated
	XPGained     int  // Total XP granted, loot included
	Loot         Loot
	Messages     []string // One combat log line per event, oldest first
}

// Resolver rolls and applies attack exchanges.
type Resolver struct {
	rng rng.Source
}

// NewResolver creates a resolver drawing from src.
func NewResolver(src rng.Source) *Resolver {
	return &Resolver{rng: src}
}

// Resolve runs one full exchange: the hero strikes, then the foe strikes back
// if it survived. Killing the foe preempts its counter-attack.
func (r *Resolver) Resolve(hero Hero, foe Foe) ExchangeResult {
	var result ExchangeResult

	lo, hi := hero.DamageRange()
	result.PlayerDamage = rng.Range(r.rng, lo, hi)
	foe.TakeDamage(result.PlayerDamage)
	result.Messages = append(result.Messages,
		fmt.Sprintf("You dealt %d damage to the %s.", result.PlayerDamage, foe.GetName()))

	if !foe.IsAlive() {
		r.resolveVictory(hero, foe, &result)
		return result
	}

	lo, hi = foe.DamageRange()
	result.EnemyDamage = rng.Range(r.rng, lo, hi)
	if rng.Percent(r.rng) < float64(hero.GetDodge()) {
		result.Dodged = true
		result.Messages = append(result.Messages,
			fmt.Sprintf("You dodged the %s's attack!", foe.GetName()))
	} else {
		hero.TakeDamage(result.EnemyDamage)
		result.Messages = append(result.Messages,
			fmt.Sprintf("The %s dealt %d damage to you.", foe.GetName(), result.EnemyDamage))
	}

	if !hero.IsAlive() {
		result.Outcome = OutcomePlayerDefeated
	} else {
		result.Outcome = OutcomeOngoing
	}
	return result
}

// resolveVictory grants the XP reward and rolls for a drop.
func (r *Resolver) resolveVictory(hero Hero, foe Foe, result *ExchangeResult) {
	result.Outcome = OutcomeEnemyDefeated

	reward := foe.GetXPReward()
	hero.GainXP(reward)
	result.XPGained = reward
	result.Messages = append(result.Messages,
		fmt.Sprintf("You defeated the %s and gained %d XP.", foe.GetName(), reward))

	if !rng.Chance(r.rng, LootChance) {
		return
	}
	if rng.Chance(r.rng, 0.5) {
		hero.AddPotions(1)
		result.Loot = LootPotion
		result.Messages = append(result.Messages, "The enemy dropped a potion!")
		return
	}
	hero.GainXP(LootXP)
	result.XPGained += LootXP
	result.Loot = LootExperience
	result.Messages = append(result.Messages,
		fmt.Sprintf("The enemy dropped an experience potion and you gained %d XP.", LootXP))
}
