package diagnostics

import (
	"fmt"
	"strings"
)

// Overlay stores the lines shown on screen. They are rebuilt at most once per
// Interval so the numbers stay readable.
type Overlay struct {
	Interval float32 // seconds

	lines   []string
	elapsed float32
	primed  bool
}

func NewOverlay(interval float32) *Overlay {
	return &Overlay{Interval: interval}
}

func (o *Overlay) AddLine(format string, args ...any) {
	o.lines = append(o.lines, fmt.Sprintf(format, args...))
}

func (o *Overlay) Clear() {
	o.lines = o.lines[:0]
}

func (o *Overlay) Lines() []string {
	return o.lines
}

func (o *Overlay) Text() string {
	if len(o.lines) == 0 {
		return ""
	}
	return strings.Join(o.lines, "\n") + "\n"
}

// Refresh advances the timer by delta and rewrites the lines from ft when it
// runs out. It reports whether the lines changed.
func (o *Overlay) Refresh(ft *FrameTime, delta float32) bool {
	o.elapsed += delta
	if o.primed && o.elapsed < o.Interval {
		return false
	}
	o.elapsed = 0
	o.primed = true

	o.Clear()
	for _, d := range []*Diagnostic{ft.FPS, ft.FrameTime} {
		v, ok := d.Smoothed()
		if !ok {
			o.AddLine("-- %s", d.Suffix)
			continue
		}
		if d == ft.FPS {
			o.AddLine("%.0f %s", v, d.Suffix)
		} else {
			o.AddLine("%.2f %s", v, d.Suffix)
		}
	}
	return true
}
