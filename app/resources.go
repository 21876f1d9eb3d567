package app

import (
	"sort"

	"cube-playground/core"
)

// ClearColor is the colour the frame is cleared to before drawing.
type ClearColor struct {
	Color core.Color
}

// Msaa is the multisample count of the window surface; 0 disables it.
type Msaa struct {
	Samples int
}

// Anchor is the screen corner a text block is laid out from.
type Anchor int

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
)

type TextBlock struct {
	Lines  []string
	Anchor Anchor
	Color  core.Color
}

// ScreenText holds named text blocks drawn over the frame. Blocks stay until
// replaced or removed.
type ScreenText struct {
	blocks map[string]TextBlock
}

func (s *ScreenText) Set(name string, block TextBlock) {
	if s.blocks == nil {
		s.blocks = make(map[string]TextBlock)
	}
	s.blocks[name] = block
}

func (s *ScreenText) Remove(name string) {
	delete(s.blocks, name)
}

func (s *ScreenText) Get(name string) (TextBlock, bool) {
	b, ok := s.blocks[name]
	return b, ok
}

// Each visits the blocks in name order.
func (s *ScreenText) Each(fn func(name string, block TextBlock)) {
	names := make([]string, 0, len(s.blocks))
	for name := range s.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn(name, s.blocks[name])
	}
}

// WindowResolution is the current framebuffer size in pixels.
type WindowResolution struct {
	Width, Height int
}

// AspectRatio returns width over height, or 16:9 before the window exists.
func (r WindowResolution) AspectRatio() float32 {
	if r.Width <= 0 || r.Height <= 0 {
		return 16.0 / 9.0
	}
	return float32(r.Width) / float32(r.Height)
}

// Place returns the top left corner of a w by h box anchored to a screen
// corner, inset by margin pixels. y points down.
func (a Anchor) Place(w, h, screenW, screenH, margin float32) (x, y float32) {
	switch a {
	case TopRight:
		return screenW - w - margin, margin
	case BottomLeft:
		return margin, screenH - h - margin
	case BottomRight:
		return screenW - w - margin, screenH - h - margin
	}
	return margin, margin
}
