package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("parse hex color %s: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// Dim returns a darker shade of c for low-HP rendering, blending toward black in
// perceptual (Lab) space. amount is clamped to [0,1].
func Dim(c tcell.Color, amount float64) tcell.Color {
	r, g, b := c.RGB()
	if r < 0 || amount <= 0 {
		return c
	}
	amount = min(1, amount)
	base := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	out := base.BlendLab(colorful.Color{}, amount).Clamped()
	or, og, ob := out.RGB255()
	return tcell.NewRGBColor(int32(or), int32(og), int32(ob))
}
