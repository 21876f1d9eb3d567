// Package glyph rasterises the fixed 7x13 bitmap font into a single-row atlas
// and lays strings out as textured quads. It does no GL work so layout can be
// checked without a context.
package glyph

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = ' '
	lastRune  = '~'
	fallback  = '?'
)

// Atlas is an alpha-only image holding printable ASCII side by side.
type Atlas struct {
	Image       *image.Alpha
	CellWidth   int
	CellHeight  int
	LineSpacing int
}

func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := face.Height
	count := int(lastRune-firstRune) + 1

	img := image.NewAlpha(image.Rect(0, 0, cellW*count, cellH))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for i := 0; i < count; i++ {
		d.Dot = fixed.P(i*cellW, face.Ascent)
		d.DrawString(string(rune(firstRune + i)))
	}
	return &Atlas{
		Image:       img,
		CellWidth:   cellW,
		CellHeight:  cellH,
		LineSpacing: cellH + 2,
	}
}

// UV returns the texture rectangle of r, substituting '?' for runes the
// atlas lacks.
func (a *Atlas) UV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstRune || r > lastRune {
		r = fallback
	}
	width := float32(a.Image.Rect.Dx())
	i := float32(r - firstRune)
	cell := float32(a.CellWidth)
	return i * cell / width, 0, (i + 1) * cell / width, 1
}

// Measure returns the pixel size of text at scale. Lines break on '\n'.
func (a *Atlas) Measure(text string, scale float32) (w, h float32) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	longest := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	w = float32(longest*a.CellWidth) * scale
	h = float32((len(lines)-1)*a.LineSpacing+a.CellHeight) * scale
	return w, h
}

// Layout appends two triangles per visible rune to buf as interleaved
// x, y, u, v floats in pixel space with y pointing down. (x, y) is the top
// left of the first line.
func (a *Atlas) Layout(buf []float32, text string, x, y, scale float32) []float32 {
	cw := float32(a.CellWidth) * scale
	ch := float32(a.CellHeight) * scale
	penX, penY := x, y
	for _, r := range text {
		if r == '\n' {
			penX = x
			penY += float32(a.LineSpacing) * scale
			continue
		}
		if r != ' ' {
			u0, v0, u1, v1 := a.UV(r)
			x0, y0, x1, y1 := penX, penY, penX+cw, penY+ch
			buf = append(buf,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
				x0, y0, u0, v0,
				x1, y1, u1, v1,
				x0, y1, u0, v1,
			)
		}
		penX += cw
	}
	return buf
}
