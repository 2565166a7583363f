package gamedata

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"
)

const enemiesFile = "enemies.json"

// EnemyDef is an enemy archetype: the base stats every encounter copies.
type EnemyDef struct {
	ID        string `json:"id"`        // Unique identifier (e.g., "minigob")
	Name      string `json:"name"`      // Display name (e.g., "MiniGob")
	Glyph     string `json:"glyph"`     // Single character for rendering
	Color     string `json:"color"`     // Hex color code (e.g., "#00FF00")
	XP        int    `json:"xp"`        // Experience granted on defeat
	HP        int    `json:"hp"`        // Base hit points
	DamageMin int    `json:"damageMin"` // Lowest counter-attack roll
	DamageMax int    `json:"damageMax"` // Highest counter-attack roll
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	for _, r := range e.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// Validate checks that the archetype can be fought.
func (e *EnemyDef) Validate() error {
	switch {
	case e.ID == "":
		return errors.New("enemy id is empty")
	case e.HP <= 0:
		return fmt.Errorf("enemy %s: hp must be positive, got %d", e.ID, e.HP)
	case e.DamageMin < 0 || e.DamageMax < e.DamageMin:
		return fmt.Errorf("enemy %s: invalid damage range %d-%d", e.ID, e.DamageMin, e.DamageMax)
	case e.XP < 0:
		return fmt.Errorf("enemy %s: xp must not be negative, got %d", e.ID, e.XP)
	}
	return nil
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads and validates enemy definitions from enemies.json in fsys.
func LoadEnemies(fsys fs.FS) ([]EnemyDef, error) {
	file, err := Load[EnemiesFile](fsys, enemiesFile)
	if err != nil {
		return nil, err
	}
	for i := range file.Enemies {
		if err := file.Enemies[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", enemiesFile, err)
		}
	}
	return file.Enemies, nil
}
