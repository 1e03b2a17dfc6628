package core

import (
	"math"
	"unicode/utf8"
)

// Image is an opaque drawable resource. Width and Height are its natural
// size in logical units; the rest describes how a character surface paints it.
type Image struct {
	Name   string
	Width  float64
	Height float64
	Glyph  rune   // Fill character
	Color  Color  // Fill colour
	Framed bool   // Draw a box outline over the fill
	Label  string // Optional caption centered inside the image
}

// Font selects text size (logical units) and colour.
type Font struct {
	Size  float64
	Color Color
}

// Surface accepts primitive draw calls in logical playfield units.
// Text is positioned by its baseline, like a canvas fillText.
type Surface interface {
	Clear()
	DrawImage(img Image, dst RectF)
	DrawText(text string, x, y float64, font Font)
	MeasureText(text string, font Font) float64
}

// fontAscent is the share of the font size that sits above the baseline.
const fontAscent = 0.8

// ScreenSurface rasterizes logical draw calls onto a character Screen,
// scaling the logical playfield to the screen size.
type ScreenSurface struct {
	screen   *Screen
	logicalW float64
	sx, sy   float64
}

// NewScreenSurface maps a logicalW x logicalH playfield onto screen.
func NewScreenSurface(screen *Screen, logicalW, logicalH float64) *ScreenSurface {
	s := &ScreenSurface{screen: screen, logicalW: logicalW}
	if logicalW > 0 {
		s.sx = float64(screen.Width()) / logicalW
	}
	if logicalH > 0 {
		s.sy = float64(screen.Height()) / logicalH
	}
	return s
}

// Scale returns the logical-to-cell scale factors.
func (s *ScreenSurface) Scale() (float64, float64) {
	return s.sx, s.sy
}

// Clear blanks the underlying screen.
func (s *ScreenSurface) Clear() {
	s.screen.Clear()
}

// DrawImage paints img stretched over dst.
func (s *ScreenSurface) DrawImage(img Image, dst RectF) {
	cells := dst.Cells(s.sx, s.sy)
	glyph := img.Glyph
	if glyph == 0 {
		glyph = '█'
	}
	s.screen.DrawRect(cells, glyph, img.Color)
	if img.Framed {
		s.screen.DrawBox(cells, img.Color)
	}
	if img.Label != "" && cells.H > 0 {
		n := utf8.RuneCountInString(img.Label)
		x := cells.X + (cells.W-n)/2
		y := cells.Y + cells.H/2
		s.screen.DrawText(x, y, img.Label, img.Color)
	}
}

// DrawText writes text with its left edge at x and baseline at y.
func (s *ScreenSurface) DrawText(text string, x, y float64, font Font) {
	top := y - font.Size*fontAscent
	col := int(math.Round(x * s.sx))
	row := int(math.Floor(top * s.sy))
	s.screen.DrawText(col, row, text, font.Color)
}

// MeasureText returns the logical width of text: one cell per rune.
func (s *ScreenSurface) MeasureText(text string, _ Font) float64 {
	if s.sx == 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(text)) * s.logicalW / float64(s.screen.Width())
}
