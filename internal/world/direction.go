package world

// Direction is one of the four cardinal directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns the cardinal directions in a fixed order.
func AllDirections() [4]Direction {
	return [4]Direction{North, East, South, West}
}

// Delta returns the unit step for the direction. North is -y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}
