package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tower-blocks/internal/core"
)

// Backgrounds lists the selectable sky themes in settings order.
var Backgrounds = []string{"day", "sunset", "night"}

// Palette maps core colors to lipgloss styles for one background theme.
type Palette map[core.Color]lipgloss.Style

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// basePalette is shared by all themes.
var basePalette = Palette{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           fg("1"),
	core.ColorGreen:         fg("2"),
	core.ColorYellow:        fg("3"),
	core.ColorBlue:          fg("4"),
	core.ColorMagenta:       fg("5"),
	core.ColorCyan:          fg("6"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightRed:     fg("9"),
	core.ColorBrightYellow:  fg("11"),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorOrange:        fg("208"),
	core.ColorGray:          fg("245"),
	core.ColorGold:          fg("220").Bold(true),
	core.ColorSky:           fg("153"),
	core.ColorBrown:         fg("94"),
}

// skyColors holds the cloud color of each background theme.
var skyColors = map[string]string{
	"day":    "153",
	"sunset": "216",
	"night":  "60",
}

// PaletteFor returns the palette of a background theme.
// Unknown names use the day sky.
func PaletteFor(background string) Palette {
	p := make(Palette, len(basePalette))
	for k, v := range basePalette {
		p[k] = v
	}
	if sky, ok := skyColors[background]; ok {
		p[core.ColorSky] = fg(sky)
	}
	return p
}

// NextBackground returns the theme after cur, wrapping around.
// step may be negative.
func NextBackground(cur string, step int) string {
	idx := 0
	for i, b := range Backgrounds {
		if b == cur {
			idx = i
			break
		}
	}
	n := len(Backgrounds)
	return Backgrounds[((idx+step)%n+n)%n]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p[startColor]
			if !ok {
				style = p[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
