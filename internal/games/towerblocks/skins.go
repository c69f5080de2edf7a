package towerblocks

import "github.com/vovakirdan/tower-blocks/internal/core"

// DefaultSkinID is the skin every profile owns from the start.
const DefaultSkinID = "classic"

// Skin is a purchasable look for the tower.
// Floor 0 uses Base; floor i > 0 uses Parts[(i-1) % len(Parts)].
type Skin struct {
	ID    string
	Name  string
	Price int
	Color core.Color
	Base  rune
	Parts []rune
}

var catalog = []Skin{
	{ID: "classic", Name: "Classic", Price: 0, Color: core.ColorBrightBlue, Base: '▓', Parts: []rune{'█', '▇', '█', '▆'}},
	{ID: "stone", Name: "Stone", Price: 50, Color: core.ColorGray, Base: '▓', Parts: []rune{'▒', '░', '▒'}},
	{ID: "ice", Name: "Ice", Price: 100, Color: core.ColorBrightCyan, Base: '█', Parts: []rune{'░', '▒'}},
	{ID: "desert", Name: "Desert", Price: 150, Color: core.ColorOrange, Base: '▓', Parts: []rune{'▒', '▓', '░'}},
	{ID: "neon", Name: "Neon", Price: 200, Color: core.ColorBrightMagenta, Base: '█', Parts: []rune{'▚', '▞'}},
	{ID: "pink", Name: "Pink", Price: 250, Color: core.ColorMagenta, Base: '▓', Parts: []rune{'█', '▒'}},
	{ID: "gothic", Name: "Gothic", Price: 300, Color: core.ColorRed, Base: '█', Parts: []rune{'▓', '▚', '▓', '▞'}},
	{ID: "golden", Name: "Golden", Price: 500, Color: core.ColorGold, Base: '█', Parts: []rune{'▓'}},
}

// Skins returns the shop catalog in display order.
func Skins() []Skin {
	out := make([]Skin, len(catalog))
	copy(out, catalog)
	return out
}

// LookupSkin finds a skin by ID.
func LookupSkin(id string) (Skin, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Skin{}, false
}

// SkinByID returns the skin with the given ID, falling back to the default.
func SkinByID(id string) Skin {
	if s, ok := LookupSkin(id); ok {
		return s
	}
	return catalog[0]
}

// Part returns the glyph for the floor at stack index i.
func (s Skin) Part(i int) rune {
	if i <= 0 || len(s.Parts) == 0 {
		return s.Base
	}
	return s.Parts[(i-1)%len(s.Parts)]
}
