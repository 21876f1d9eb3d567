// Package input holds per-frame keyboard state and queued mouse motion.
//
// The window's callbacks feed these types; systems only read them. Nothing
// here touches GLFW so systems can be driven from tests.
package input

import (
	"cube-playground/core"
	"cube-playground/math"
)

// KeyCode names the physical keys the program reacts to.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	ArrowLeft
	ArrowRight
	ArrowUp
	ArrowDown
	Escape
	F3
)

var glfwKeys = map[int]KeyCode{
	core.KeyW:      KeyW,
	core.KeyA:      KeyA,
	core.KeyS:      KeyS,
	core.KeyD:      KeyD,
	core.KeyLeft:   ArrowLeft,
	core.KeyRight:  ArrowRight,
	core.KeyUp:     ArrowUp,
	core.KeyDown:   ArrowDown,
	core.KeyEscape: Escape,
	core.KeyF3:     F3,
}

// KeyFromGLFW maps a raw window key code, returning KeyUnknown for keys the
// program does not track.
func KeyFromGLFW(key int) KeyCode {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return KeyUnknown
}

// ButtonInput tracks which buttons are held plus the edges seen this frame.
type ButtonInput[K comparable] struct {
	pressed      map[K]bool
	justPressed  map[K]bool
	justReleased map[K]bool
}

func NewButtonInput[K comparable]() *ButtonInput[K] {
	return &ButtonInput[K]{
		pressed:      make(map[K]bool),
		justPressed:  make(map[K]bool),
		justReleased: make(map[K]bool),
	}
}

func (b *ButtonInput[K]) Press(key K) {
	if !b.pressed[key] {
		b.justPressed[key] = true
	}
	b.pressed[key] = true
}

func (b *ButtonInput[K]) Release(key K) {
	if b.pressed[key] {
		b.justReleased[key] = true
	}
	delete(b.pressed, key)
}

// ReleaseAll releases every held button, e.g. when the window loses focus.
func (b *ButtonInput[K]) ReleaseAll() {
	for key := range b.pressed {
		b.Release(key)
	}
}

func (b *ButtonInput[K]) Pressed(key K) bool {
	return b.pressed[key]
}

func (b *ButtonInput[K]) JustPressed(key K) bool {
	return b.justPressed[key]
}

func (b *ButtonInput[K]) JustReleased(key K) bool {
	return b.justReleased[key]
}

// Clear forgets this frame's edges. Held buttons stay held.
func (b *ButtonInput[K]) Clear() {
	clear(b.justPressed)
	clear(b.justReleased)
}

// Events is a queue of events produced between frames.
type Events[T any] struct {
	queue []T
}

func (e *Events[T]) Send(ev T) {
	e.queue = append(e.queue, ev)
}

// Read returns every queued event and empties the queue, so each event is
// consumed once.
func (e *Events[T]) Read() []T {
	out := e.queue
	e.queue = nil
	return out
}

func (e *Events[T]) Len() int {
	return len(e.queue)
}

func (e *Events[T]) Clear() {
	e.queue = e.queue[:0]
}

// MouseMotion is the pointer movement since the previous motion event, in
// screen pixels (+X right, +Y down).
type MouseMotion struct {
	Delta math.Vec2
}

// MotionTracker turns absolute cursor positions into MouseMotion events.
type MotionTracker struct {
	events   *Events[MouseMotion]
	last     math.Vec2
	hasFirst bool
}

func NewMotionTracker(events *Events[MouseMotion]) *MotionTracker {
	return &MotionTracker{events: events}
}

// CursorMoved records a cursor position. The first position after Reset only
// establishes the baseline.
func (m *MotionTracker) CursorMoved(x, y float64) {
	pos := math.NewVec2(float32(x), float32(y))
	if !m.hasFirst {
		m.last = pos
		m.hasFirst = true
		return
	}
	delta := pos.Sub(m.last)
	m.last = pos
	if delta == math.Vec2Zero {
		return
	}
	m.events.Send(MouseMotion{Delta: delta})
}

// Reset drops the baseline, e.g. after focus changes.
func (m *MotionTracker) Reset() {
	m.hasFirst = false
}
