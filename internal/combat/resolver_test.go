package combat

import (
	"math/rand"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/rng/rngtest"
)

// mockHero is a test implementation of the Hero interface.
type mockHero struct {
	hp, maxHP int
	dmgLo     int
	dmgHi     int
	dodge     int
	xp        int
	potions   int
}

func newMockHero(hp, lo, hi, dodge int) *mockHero {
	return &mockHero{hp: hp, maxHP: hp, dmgLo: lo, dmgHi: hi, dodge: dodge}
}

func (m *mockHero) GetName() string           { return "Hero" }
func (m *mockHero) IsAlive() bool             { return m.hp > 0 }
func (m *mockHero) GetHP() int                { return m.hp }
func (m *mockHero) DamageRange() (int, int)   { return m.dmgLo, m.dmgHi }
func (m *mockHero) GetDodge() int             { return m.dodge }
func (m *mockHero) GainXP(amount int)         { m.xp += amount }
func (m *mockHero) AddPotions(n int)          { m.potions += n }
func (m *mockHero) TakeDamage(amount int) int { return takeDamage(&m.hp, amount) }

// mockFoe is a test implementation of the Foe interface.
type mockFoe struct {
	name   string
	hp     int
	dmgLo  int
	dmgHi  int
	reward int
}

func (m *mockFoe) GetName() string           { return m.name }
func (m *mockFoe) IsAlive() bool             { return m.hp > 0 }
func (m *mockFoe) GetHP() int                { return m.hp }
func (m *mockFoe) DamageRange() (int, int)   { return m.dmgLo, m.dmgHi }
func (m *mockFoe) GetXPReward() int          { return m.reward }
func (m *mockFoe) TakeDamage(amount int) int { return takeDamage(&m.hp, amount) }

func takeDamage(hp *int, amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, *hp)
	*hp -= actual
	return actual
}

func miniGob() *mockFoe {
	return &mockFoe{name: "MiniGob", hp: 15, dmgLo: 1, dmgHi: 6, reward: 5}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeOngoing, "ongoing"},
		{OutcomeEnemyDefeated, "enemy_defeated"},
		{OutcomePlayerDefeated, "player_defeated"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.expected {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.expected)
		}
	}
}

func TestLootString(t *testing.T) {
	tests := []struct {
		loot     Loot
		expected string
	}{
		{LootNone, "none"},
		{LootPotion, "potion"},
		{LootExperience, "experience"},
		{Loot(7), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.loot.String(); got != tt.expected {
			t.Errorf("Loot(%d).String() = %q, want %q", tt.loot, got, tt.expected)
		}
	}
}

func TestResolveOngoingExchange(t *testing.T) {
	hero := newMockHero(100, 2, 12, 0)
	foe := miniGob()
	// Player rolls 2+3=5, enemy rolls 1+2=3, dodge roll 50 >= 0.
	src := &rngtest.Script{Ints: []int{3, 2}, Floats: []float64{0.5}}

	result := NewResolver(src).Resolve(hero, foe)

	if result.Outcome != OutcomeOngoing {
		t.Fatalf("Outcome = %v, want ongoing", result.Outcome)
	}
	if result.PlayerDamage != 5 || foe.hp != 10 {
		t.Errorf("PlayerDamage = %d, foe hp = %d; want 5 and 10", result.PlayerDamage, foe.hp)
	}
	if result.EnemyDamage != 3 || hero.hp != 97 {
		t.Errorf("EnemyDamage = %d, hero hp = %d; want 3 and 97", result.EnemyDamage, hero.hp)
	}
	want := []string{
		"You dealt 5 damage to the MiniGob.",
		"The MiniGob dealt 3 damage to you.",
	}
	assertMessages(t, result.Messages, want)
}

func TestResolveEnemyHPStrictlyDecreases(t *testing.T) {
	src := rand.New(rand.NewSource(4))
	for trial := 0; trial < 200; trial++ {
		hero := newMockHero(1000, 2, 12, 0)
		foe := &mockFoe{name: "Wall", hp: 500, dmgLo: 1, dmgHi: 2}
		r := NewResolver(src)

		before := foe.hp
		result := r.Resolve(hero, foe)
		dealt := before - foe.hp

		if dealt != result.PlayerDamage {
			t.Fatalf("hp dropped by %d, rolled %d", dealt, result.PlayerDamage)
		}
		if dealt < 2 || dealt > 12 {
			t.Fatalf("damage %d outside [2,12]", dealt)
		}
	}
}

func TestResolveDodgeNegatesDamage(t *testing.T) {
	hero := newMockHero(50, 1, 1, 40)
	foe := &mockFoe{name: "Rat", hp: 5, dmgLo: 4, dmgHi: 4}
	// Dodge roll 39.9 < 40.
	src := &rngtest.Script{Floats: []float64{0.399}}

	result := NewResolver(src).Resolve(hero, foe)

	if !result.Dodged {
		t.Fatal("expected the attack to be dodged")
	}
	if hero.hp != 50 {
		t.Errorf("hero hp = %d after dodge, want 50", hero.hp)
	}
	assertMessages(t, result.Messages, []string{
		"You dealt 1 damage to the Rat.",
		"You dodged the Rat's attack!",
	})
}

func TestResolveDodgeBoundaryHits(t *testing.T) {
	hero := newMockHero(50, 1, 1, 40)
	foe := &mockFoe{name: "Rat", hp: 5, dmgLo: 4, dmgHi: 4}
	// Dodge roll exactly 40 is not < 40.
	src := &rngtest.Script{Floats: []float64{0.4}}

	result := NewResolver(src).Resolve(hero, foe)

	if result.Dodged {
		t.Fatal("roll equal to dodge chance should hit")
	}
	if hero.hp != 46 {
		t.Errorf("hero hp = %d, want 46", hero.hp)
	}
}

func TestResolveVictoryPreemptsCounterAttack(t *testing.T) {
	hero := newMockHero(10, 20, 20, 0)
	foe := miniGob()
	// Only the loot roll is drawn: 0.5 means no drop.
	src := &rngtest.Script{Floats: []float64{0.5}}

	result := NewResolver(src).Resolve(hero, foe)

	if result.Outcome != OutcomeEnemyDefeated {
		t.Fatalf("Outcome = %v, want enemy_defeated", result.Outcome)
	}
	if hero.hp != 10 || result.EnemyDamage != 0 {
		t.Errorf("hero took damage on a killing blow: hp=%d enemyDamage=%d", hero.hp, result.EnemyDamage)
	}
	if hero.xp != 5 || result.XPGained != 5 {
		t.Errorf("xp = %d (gained %d), want 5", hero.xp, result.XPGained)
	}
	if result.Loot != LootNone {
		t.Errorf("Loot = %v, want none", result.Loot)
	}
	if len(src.Floats) != 0 {
		t.Errorf("loot roll not consumed")
	}
	assertMessages(t, result.Messages, []string{
		"You dealt 20 damage to the MiniGob.",
		"You defeated the MiniGob and gained 5 XP.",
	})
}

func TestResolveLootDrops(t *testing.T) {
	tests := []struct {
		name     string
		floats   []float64
		loot     Loot
		xp       int
		potions  int
		lastLine string
	}{
		{"potion", []float64{0.05, 0.2}, LootPotion, 5, 1, "The enemy dropped a potion!"},
		{"experience", []float64{0.09, 0.5}, LootExperience, 15, 0, "The enemy dropped an experience potion and you gained 10 XP."},
		{"nothing", []float64{0.1}, LootNone, 5, 0, "You defeated the MiniGob and gained 5 XP."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hero := newMockHero(10, 20, 20, 0)
			foe := miniGob()
			src := &rngtest.Script{Floats: tt.floats}

			result := NewResolver(src).Resolve(hero, foe)

			if result.Loot != tt.loot {
				t.Errorf("Loot = %v, want %v", result.Loot, tt.loot)
			}
			if hero.xp != tt.xp || result.XPGained != tt.xp {
				t.Errorf("xp = %d (gained %d), want %d", hero.xp, result.XPGained, tt.xp)
			}
			if hero.potions != tt.potions {
				t.Errorf("potions = %d, want %d", hero.potions, tt.potions)
			}
			if last := result.Messages[len(result.Messages)-1]; last != tt.lastLine {
				t.Errorf("last message = %q, want %q", last, tt.lastLine)
			}
		})
	}
}

func TestResolvePlayerDefeated(t *testing.T) {
	hero := newMockHero(3, 1, 1, 0)
	foe := &mockFoe{name: "Mongol", hp: 34, dmgLo: 4, dmgHi: 9}
	src := rngtest.Constant{Float: 0.99, Int: 0}

	result := NewResolver(src).Resolve(hero, foe)

	if result.Outcome != OutcomePlayerDefeated {
		t.Fatalf("Outcome = %v, want player_defeated", result.Outcome)
	}
	if hero.hp != 0 {
		t.Errorf("hero hp = %d, want clamped to 0", hero.hp)
	}
}

func TestMiniGobFallsWithinEightExchanges(t *testing.T) {
	// Minimum rolls every time: 2 damage per exchange needs exactly ceil(15/2) = 8.
	hero := newMockHero(100, 2, 12, 0)
	foe := miniGob()
	r := NewResolver(rngtest.Constant{Float: 0.99, Int: 0})

	var result ExchangeResult
	exchanges := 0
	for foe.IsAlive() {
		exchanges++
		if exchanges > 8 {
			t.Fatalf("MiniGob still alive after 8 exchanges (hp=%d)", foe.hp)
		}
		result = r.Resolve(hero, foe)
	}

	if exchanges != 8 {
		t.Errorf("exchanges = %d, want 8 with minimum rolls", exchanges)
	}
	if result.Outcome != OutcomeEnemyDefeated {
		t.Errorf("final Outcome = %v, want enemy_defeated", result.Outcome)
	}
	if hero.xp != 5 {
		t.Errorf("xp = %d, want MiniGob reward 5", hero.xp)
	}
	if hero.hp != 93 {
		t.Errorf("hero hp = %d, want 93 after seven 1-damage counters", hero.hp)
	}
}

func TestMiniGobBoundedWithRandomRolls(t *testing.T) {
	src := rand.New(rand.NewSource(2024))
	for trial := 0; trial < 100; trial++ {
		hero := newMockHero(1000, 2, 12, 0)
		foe := miniGob()
		r := NewResolver(src)

		exchanges := 0
		var result ExchangeResult
		for foe.IsAlive() {
			exchanges++
			result = r.Resolve(hero, foe)
		}
		if exchanges > 8 {
			t.Fatalf("trial %d: took %d exchanges", trial, exchanges)
		}
		if result.Outcome != OutcomeEnemyDefeated {
			t.Fatalf("trial %d: final outcome %v", trial, result.Outcome)
		}
		if result.XPGained != 5 && result.XPGained != 5+LootXP {
			t.Fatalf("trial %d: XPGained = %d", trial, result.XPGained)
		}
	}
}

func assertMessages(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("messages = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
