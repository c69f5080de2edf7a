package core

// Color is a logical foreground color of a screen cell. The platform maps
// each one to a terminal style, so the sky can change with the theme
// without touching game code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorOrange
	ColorGray
	ColorGold  // golden floors and bonus text
	ColorSky   // background sky dots
	ColorBrown // ground line
	colorCount
)

var colorNames = [colorCount]string{
	"default", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright red", "bright yellow", "bright blue", "bright magenta", "bright cyan",
	"orange", "gray", "gold", "sky", "brown",
}

func (c Color) String() string {
	if c >= colorCount {
		return "unknown"
	}
	return colorNames[c]
}
