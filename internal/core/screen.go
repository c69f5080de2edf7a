package core

import "strings"

// Cell is one character position and its foreground color.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a colored character buffer. Games draw into it with plain cell
// operations; the platform turns it into terminal output. Writes outside the
// buffer are dropped.
type Screen struct {
	w, h  int
	cells []Cell // row-major, len w*h
}

// NewScreen returns a blank w by h buffer.
func NewScreen(w, h int) *Screen {
	s := &Screen{w: max(w, 0), h: max(h, 0)}
	s.cells = make([]Cell, s.w*s.h)
	s.Clear()
	return s
}

func (s *Screen) Width() int  { return s.w }
func (s *Screen) Height() int { return s.h }

// Bounds is the rectangle covered by the buffer.
func (s *Screen) Bounds() Rect { return Rect{W: s.w, H: s.h} }

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return 0, false
	}
	return y*s.w + x, true
}

// Resize changes the dimensions and keeps the overlapping top-left content.
func (s *Screen) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	old := *s
	*s = *NewScreen(w, h)
	keep := s.Bounds().Intersect(old.Bounds())
	for y := 0; y < keep.H; y++ {
		copy(s.cells[y*s.w:y*s.w+keep.W], old.cells[y*old.w:y*old.w+keep.W])
	}
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blankCell
	}
}

// Set writes r with the default color.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored writes r with color c.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Get returns the rune at (x, y), or a space outside the buffer.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the buffer.
func (s *Screen) GetCell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blankCell
}

// DrawText writes text left to right from (x, y), clipped at the edges.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored is DrawText with a color.
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	for _, r := range text {
		s.SetColored(x, y, r, c)
		x++
	}
}

// DrawTextCentered writes text horizontally centered on row y.
func (s *Screen) DrawTextCentered(y int, text string) {
	s.DrawText((s.w-len([]rune(text)))/2, y, text)
}

// DrawRect fills r with the fill rune.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := s.cells[y*s.w : (y+1)*s.w]
		for x := r.X; x < r.Right(); x++ {
			row[x] = Cell{Rune: fill, Color: c}
		}
	}
}

// DrawBox outlines r with single-line box glyphs.
func (s *Screen) DrawBox(r Rect) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.Right()-1, r.Bottom()-1
	s.DrawHLine(r.X+1, r.Y, r.W-2, '─', ColorDefault)
	s.DrawHLine(r.X+1, y1, r.W-2, '─', ColorDefault)
	for y := r.Y + 1; y < y1; y++ {
		s.Set(r.X, y, '│')
		s.Set(x1, y, '│')
	}
	s.Set(r.X, r.Y, '┌')
	s.Set(x1, r.Y, '┐')
	s.Set(r.X, y1, '└')
	s.Set(x1, y1, '┘')
}

// DrawHLine writes n copies of r rightwards from (x, y).
func (s *Screen) DrawHLine(x, y, n int, r rune, c Color) {
	for i := range n {
		s.SetColored(x+i, y, r, c)
	}
}

// DrawLine plots a Bresenham line between two cells, endpoints included.
func (s *Screen) DrawLine(x0, y0, x1, y1 int, r rune, c Color) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y0-y1, 1
	if dy > 0 {
		dy = -dy
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		s.SetColored(x0, y0, r, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Row returns row y as plain text; rows outside the buffer are blank.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.h {
		return strings.Repeat(" ", s.w)
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.w : (y+1)*s.w] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.h)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
