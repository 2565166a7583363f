package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncrawl/internal/rng"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
)

const (
	// Default dungeon dimensions. Odd sizes keep the carve lattice flush
	// with the far edges when generation starts at an even origin.
	DefaultWidth  = 49
	DefaultHeight = 21
)

var (
	// ErrInvalidSize is returned for a dungeon smaller than 1x1.
	ErrInvalidSize = errors.New("dungeon dimensions must be at least 1x1")
	// ErrOriginOutOfBounds is returned when generation starts outside the grid.
	ErrOriginOutOfBounds = errors.New("generation origin is out of bounds")
)

// Dungeon is one floor of the maze.
type Dungeon struct {
	Width  int
	Height int
	Tiles  [][]Tile
	ExitX  int
	ExitY  int
	rng    rng.Source
}

// NewDungeon creates a new dungeon filled with walls.
func NewDungeon(width, height int, src rng.Source) (*Dungeon, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}

	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Dungeon{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		ExitX:  -1,
		ExitY:  -1,
		rng:    src,
	}, nil
}

// Generate carves a perfect maze from the origin and places the exit.
func (d *Dungeon) Generate(ctx context.Context, originX, originY int) error {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	if !d.inBounds(originX, originY) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOriginOutOfBounds, originX, originY, d.Width, d.Height)
	}

	startTime := time.Now()

	d.carveMaze(originX, originY)
	d.placeExit()

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.floor_count", d.FloorCount()),
		attribute.Int("dungeon.exit_x", d.ExitX),
		attribute.Int("dungeon.exit_y", d.ExitY),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return nil
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	if !d.inBounds(x, y) {
		return false
	}
	return d.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position.
func (d *Dungeon) GetTile(x, y int) Tile {
	if !d.inBounds(x, y) {
		return TileWall
	}
	return d.Tiles[y][x]
}

// IsExit reports whether the position is the exit to the next floor.
func (d *Dungeon) IsExit(x, y int) bool {
	return x == d.ExitX && y == d.ExitY
}

// FloorCount returns the number of floor tiles.
func (d *Dungeon) FloorCount() int {
	count := 0
	for y := range d.Tiles {
		for _, t := range d.Tiles[y] {
			if t == TileFloor {
				count++
			}
		}
	}
	return count
}

func (d *Dungeon) inBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// carveFrame is one cell on the carving stack with its remaining directions.
type carveFrame struct {
	x, y int
	dirs [4]Direction
	next int
}

// carveMaze runs randomized depth-first carving on the lattice of cells two
// steps apart. Odd offsets from the origin are the walls between cells.
func (d *Dungeon) carveMaze(originX, originY int) {
	d.Tiles[originY][originX] = TileFloor
	stack := []carveFrame{{x: originX, y: originY, dirs: d.shuffledDirections()}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		dir := top.dirs[top.next]
		top.next++

		dx, dy := dir.Delta()
		nx, ny := top.x+dx*2, top.y+dy*2
		if !d.inBounds(nx, ny) || d.Tiles[ny][nx] != TileWall {
			continue
		}

		d.Tiles[top.y+dy][top.x+dx] = TileFloor
		d.Tiles[ny][nx] = TileFloor
		stack = append(stack, carveFrame{x: nx, y: ny, dirs: d.shuffledDirections()})
	}
}

// shuffledDirections returns the four cardinal directions in random order.
func (d *Dungeon) shuffledDirections() [4]Direction {
	dirs := AllDirections()
	rng.Shuffle(d.rng, len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}

// placeExit rejection-samples random cells until it lands on floor.
// The carved origin guarantees at least one candidate.
func (d *Dungeon) placeExit() {
	for {
		x := d.rng.Intn(d.Width)
		y := d.rng.Intn(d.Height)
		if d.Tiles[y][x] == TileFloor {
			d.ExitX, d.ExitY = x, y
			return
		}
	}
}
