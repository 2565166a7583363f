package progression

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/dungeoncrawl/internal/entity"
)

func TestRequiredXPIsLinear(t *testing.T) {
	for level, want := range map[int]int{1: 50, 2: 100, 3: 150, 10: 500} {
		if got := RequiredXP(level); got != want {
			t.Errorf("RequiredXP(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestCheckSingleLevel(t *testing.T) {
	ctx := context.Background()
	p := entity.NewPlayer(0, 0)
	var tr Tracker

	p.GainXP(50)
	reached := tr.Check(ctx, p)

	if p.Level != 2 || p.XP != 0 {
		t.Errorf("level/xp = %d/%d, want 2/0", p.Level, p.XP)
	}
	if len(reached) != 1 || reached[0] != 2 {
		t.Errorf("reached = %v, want [2]", reached)
	}
	if tr.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", tr.Pending())
	}

	if _, err := tr.Allocate(ctx, p, "hp"); err != nil {
		t.Fatalf("Allocate(hp) error: %v", err)
	}
	if _, err := tr.Allocate(ctx, p, "dmg"); err != nil {
		t.Fatalf("Allocate(dmg) error: %v", err)
	}
	if tr.Pending() != 0 {
		t.Errorf("pending = %d after two allocations, want 0", tr.Pending())
	}
	if p.MaxHP != 105 || p.HP != 105 {
		t.Errorf("hp = %d/%d, want 105/105", p.HP, p.MaxHP)
	}
	if p.DamageMin != 3 || p.DamageMax != 13 {
		t.Errorf("damage = %d-%d, want 3-13", p.DamageMin, p.DamageMax)
	}
}

func TestCheckCarriesOverExcess(t *testing.T) {
	// 120 XP at level 1: 120-50 = 70 at level 2, and 70 < 100 stops there.
	p := entity.NewPlayer(0, 0)
	p.XP = 120
	var tr Tracker

	reached := tr.Check(context.Background(), p)

	if p.Level != 2 || p.XP != 70 || tr.Pending() != 2 {
		t.Errorf("(level, xp, points) = (%d, %d, %d), want (2, 70, 2)", p.Level, p.XP, tr.Pending())
	}
	if len(reached) != 1 {
		t.Errorf("reached = %v, want one level", reached)
	}
}

func TestCheckCascades(t *testing.T) {
	// 300 XP: 50 -> L2 (250), 100 -> L3 (150), 150 -> L4 (0).
	p := entity.NewPlayer(0, 0)
	p.XP = 300
	var tr Tracker

	reached := tr.Check(context.Background(), p)

	if p.Level != 4 || p.XP != 0 || tr.Pending() != 6 {
		t.Errorf("(level, xp, points) = (%d, %d, %d), want (4, 0, 6)", p.Level, p.XP, tr.Pending())
	}
	want := []int{2, 3, 4}
	if len(reached) != len(want) {
		t.Fatalf("reached = %v, want %v", reached, want)
	}
	for i := range want {
		if reached[i] != want[i] {
			t.Errorf("reached[%d] = %d, want %d", i, reached[i], want[i])
		}
	}
}

func TestCheckIdempotentAtRest(t *testing.T) {
	p := entity.NewPlayer(0, 0)
	p.XP = 49
	var tr Tracker

	for i := 0; i < 3; i++ {
		if reached := tr.Check(context.Background(), p); len(reached) != 0 {
			t.Fatalf("call %d reached %v below threshold", i, reached)
		}
	}
	if p.Level != 1 || p.XP != 49 || tr.Pending() != 0 {
		t.Errorf("state changed at rest: level %d xp %d pending %d", p.Level, p.XP, tr.Pending())
	}
}

func TestAllocateInvalidChoiceKeepsPoint(t *testing.T) {
	ctx := context.Background()
	p := entity.NewPlayer(0, 0)
	p.XP = 50
	var tr Tracker
	tr.Check(ctx, p)
	before := *p

	for _, choice := range []string{"", "str", "hpp", "dodge"} {
		_, err := tr.Allocate(ctx, p, choice)
		if !errors.Is(err, ErrInvalidChoice) {
			t.Errorf("Allocate(%q) error = %v, want ErrInvalidChoice", choice, err)
		}
	}
	if tr.Pending() != 2 {
		t.Errorf("pending = %d after invalid choices, want 2", tr.Pending())
	}
	if *p != before {
		t.Errorf("player changed on invalid choice: %+v -> %+v", before, *p)
	}
}

func TestAllocateWithoutPoints(t *testing.T) {
	var tr Tracker
	if _, err := tr.Allocate(context.Background(), entity.NewPlayer(0, 0), "hp"); !errors.Is(err, ErrNoPendingPoints) {
		t.Errorf("Allocate() error = %v, want ErrNoPendingPoints", err)
	}
}

func TestDodgeIsUncapped(t *testing.T) {
	p := entity.NewPlayer(0, 0)
	for i := 0; i < 30; i++ {
		Apply(p, StatDodge)
	}
	if p.Dodge != 150 {
		t.Errorf("dodge = %d, want 150 with no cap", p.Dodge)
	}
}

func TestParseStat(t *testing.T) {
	tests := []struct {
		input string
		want  Stat
		valid bool
	}{
		{"hp", StatHP, true},
		{"HP", StatHP, true},
		{"  Dmg ", StatDamage, true},
		{"DOG", StatDodge, true},
		{"dodge", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseStat(tt.input)
		if tt.valid {
			if err != nil || got != tt.want {
				t.Errorf("ParseStat(%q) = %v, %v; want %v", tt.input, got, err, tt.want)
			}
		} else if err == nil {
			t.Errorf("ParseStat(%q) should fail", tt.input)
		}
	}
}

func TestStatString(t *testing.T) {
	tests := []struct {
		stat     Stat
		expected string
	}{
		{StatHP, "hp"},
		{StatDamage, "dmg"},
		{StatDodge, "dog"},
		{Stat(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.stat.String(); got != tt.expected {
			t.Errorf("Stat(%d).String() = %q, want %q", tt.stat, got, tt.expected)
		}
	}
}
