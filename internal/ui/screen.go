// Package ui provides terminal rendering using tcell.
package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes an existing tcell screen, such as a simulation
// screen in tests.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text starting at (x, y), one grapheme cluster per cell
// group, and stops before exceeding maxWidth columns. It returns the number
// of columns used.
func (s *Screen) DrawText(x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	state := -1
	rest := text
	var cluster string
	var width int
	for rest != "" {
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width == 0 {
			continue
		}
		if used+width > maxWidth {
			break
		}
		runes := []rune(cluster)
		s.screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += width
	}
	return used
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Truncate shortens text to fit within maxWidth display columns.
func Truncate(text string, maxWidth int) string {
	if uniseg.StringWidth(text) <= maxWidth {
		return text
	}
	used := 0
	state := -1
	rest := text
	var cluster string
	var width int
	out := make([]byte, 0, len(text))
	for rest != "" {
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+width > maxWidth {
			break
		}
		out = append(out, cluster...)
		used += width
	}
	return string(out)
}
