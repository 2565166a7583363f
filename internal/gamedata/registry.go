package gamedata

import (
	"errors"
	"io/fs"
	"os"

	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

// EnemyRegistry is the encounter table: an immutable list of archetypes.
type EnemyRegistry struct {
	enemies []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	return &EnemyRegistry{enemies: enemies}
}

// LoadEnemyRegistry loads a registry from enemies.json.
// A non-empty dir overrides the embedded data with a file on disk.
func LoadEnemyRegistry(dir string) (*EnemyRegistry, error) {
	var fsys fs.FS = dataFS
	if dir != "" {
		fsys = os.DirFS(dir)
	}

	enemies, err := LoadEnemies(fsys)
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads the embedded registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry("")
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects an archetype uniformly. Every archetype has equal
// weight regardless of difficulty.
func (r *EnemyRegistry) SpawnRandom(src rng.Source) *EnemyDef {
	if len(r.enemies) == 0 {
		return nil
	}
	return &r.enemies[src.Intn(len(r.enemies))]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
