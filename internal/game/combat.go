package game

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/combat"
	"github.com/samdwyer/dungeoncrawl/internal/progression"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

// Attack runs one full exchange against the engaged enemy. A victory clears
// the enemy and checks for level-ups; a defeat resets the whole run.
func (s *Session) Attack(ctx context.Context) (combat.Outcome, error) {
	if s.enemy == nil {
		return combat.OutcomeOngoing, ErrNotInCombat
	}

	tracer := telemetry.Tracer("combat")
	ctx, span := tracer.Start(ctx, "combat.exchange")
	defer span.End()

	enemy := s.enemy
	result := s.resolver.Resolve(s.player, enemy)
	for _, msg := range result.Messages {
		s.addLog(msg)
	}

	span.SetAttributes(
		attribute.String("enemy", enemy.ID()),
		attribute.String("outcome", result.Outcome.String()),
		attribute.Int("player_damage", result.PlayerDamage),
		attribute.Int("enemy_damage", result.EnemyDamage),
		attribute.Bool("dodged", result.Dodged),
		attribute.Int("player_hp", s.player.HP),
		attribute.Int("enemy_hp", enemy.HP),
		attribute.String("run_id", s.runID.String()),
	)

	switch result.Outcome {
	case combat.OutcomeEnemyDefeated:
		s.enemy = nil
		span.SetAttributes(
			attribute.Int("xp_gained", result.XPGained),
			attribute.String("loot", result.Loot.String()),
		)
		s.logEntry().WithFields(logrus.Fields{
			"enemy":     enemy.ID(),
			"xp_gained": result.XPGained,
			"loot":      result.Loot.String(),
		}).Info("Enemy defeated")
		s.announceLevels(s.tracker.Check(ctx, s.player))

	case combat.OutcomePlayerDefeated:
		s.logEntry().WithFields(logrus.Fields{
			"enemy": enemy.ID(),
			"level": s.player.Level,
		}).Warn("Player defeated")
		s.reset(ctx)
		s.addLog(fmt.Sprintf("You were defeated by the %s. A new adventure begins.", enemy.Name))
	}

	return result.Outcome, nil
}

// UsePotion drinks one potion, in or out of combat.
func (s *Session) UsePotion(ctx context.Context) error {
	if s.State() == StateLevelUp {
		return ErrChoicePending
	}
	if !s.player.SpendPotion() {
		return ErrNoPotions
	}

	healed := s.player.Heal(PotionHeal)
	s.addLog(fmt.Sprintf("Used a potion and restored %d HP.", healed))
	s.logEntry().WithFields(logrus.Fields{
		"healed":  healed,
		"potions": s.player.Potions,
	}).Debug("Potion used")
	return nil
}

// Allocate spends one pending stat point on choice ("hp", "dmg" or "dog").
// Invalid choices return progression.ErrInvalidChoice and spend nothing.
func (s *Session) Allocate(ctx context.Context, choice string) error {
	reached, err := s.tracker.Allocate(ctx, s.player, choice)
	if err != nil {
		return err
	}

	stat, _ := progression.ParseStat(choice)
	s.logEntry().WithFields(logrus.Fields{
		"stat":    stat.String(),
		"pending": s.tracker.Pending(),
	}).Debug("Stat point allocated")

	s.announceLevels(reached)
	return nil
}

func (s *Session) announceLevels(levels []int) {
	for _, level := range levels {
		s.addLog(fmt.Sprintf("You reached level %d!", level))
		s.logEntry().WithFields(logrus.Fields{
			"level":   level,
			"pending": s.tracker.Pending(),
		}).Info("Level up")
	}
}
