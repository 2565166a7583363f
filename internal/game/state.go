// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where the player walks the maze.
	StateExplore State = iota
	// StateCombat means an enemy is engaged; only attacks and potions act.
	StateCombat
	// StateLevelUp suspends play until every pending stat point is allocated.
	StateLevelUp
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	case StateLevelUp:
		return "level_up"
	default:
		return "unknown"
	}
}

// MoveOutcome is the result of a single move intent.
type MoveOutcome int

const (
	// MoveBlocked means nothing changed: a wall, the grid edge, or a state
	// that does not allow movement.
	MoveBlocked MoveOutcome = iota
	// MoveFree is a plain step with no encounter.
	MoveFree
	// MoveExit means the player reached the exit and a new floor was generated.
	MoveExit
	// MoveEncounter means the step fired an encounter, hostile or a potion.
	MoveEncounter
)

// String returns a human-readable outcome name.
func (m MoveOutcome) String() string {
	switch m {
	case MoveBlocked:
		return "blocked"
	case MoveFree:
		return "free"
	case MoveExit:
		return "exit"
	case MoveEncounter:
		return "encounter"
	default:
		return "unknown"
	}
}
