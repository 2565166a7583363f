package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeoncrawl/internal/world"
)

const (
	sidebarGap = 2
	minLogRows = 3
)

// Line is one styled row of sidebar text.
type Line struct {
	Text  string
	Style tcell.Style
}

// Frame is everything drawn in one refresh.
type Frame struct {
	Dungeon      *world.Dungeon
	PlayerX      int
	PlayerY      int
	PlayerSymbol rune
	Sidebar      []Line
	Log          []string // most recent first
	Prompt       string
	Status       string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the maze, sidebar, combat log and prompt.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	width, height := r.screen.Size()

	mapW, mapH := 0, 0
	if d := f.Dungeon; d != nil {
		mapW, mapH = d.Width, d.Height
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				tile := d.GetTile(x, y)
				r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
			}
		}
		if d.ExitX >= 0 && d.ExitY >= 0 {
			exitStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
			r.screen.SetContent(d.ExitX, d.ExitY, world.TileExit.Rune(), exitStyle)
		}
	}

	// Draw player on top
	symbol := f.PlayerSymbol
	if symbol == 0 {
		symbol = '@'
	}
	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorDodgerBlue).
		Bold(true)
	r.screen.SetContent(f.PlayerX, f.PlayerY, symbol, playerStyle)

	sideX := mapW + sidebarGap
	for i, line := range f.Sidebar {
		r.screen.DrawText(sideX, i, width-sideX, line.Text, line.Style)
	}

	// The log fills the rows between the map and the prompt.
	logTop := max(mapH+1, len(f.Sidebar)+1)
	logRows := height - 2 - logTop
	if logRows < minLogRows {
		logRows = minLogRows
	}
	logStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, msg := range f.Log {
		if i >= logRows {
			break
		}
		style := logStyle
		if i == 0 {
			style = style.Foreground(tcell.ColorWhite)
		}
		r.screen.DrawText(0, logTop+i, width, msg, style)
	}

	if f.Prompt != "" {
		r.RenderMessage(f.Prompt, height-2)
	}
	if f.Status != "" {
		statusStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
		r.screen.DrawText(0, height-1, width, f.Status, statusStyle)
	}

	r.screen.Show()
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	width, _ := r.screen.Size()
	r.screen.DrawText(0, y, width, msg, style)
}
