// Package world keeps the state systems work on: the scene graph, the markers
// tagging its nodes, typed resources and frame time.
package world

import (
	"fmt"
	"iter"
	"reflect"
	"time"

	"github.com/kamstrup/intmap"

	"cube-playground/scene"
)

// Time is the frame clock. Delta is the duration of the previous frame.
type Time struct {
	Delta   float32 // seconds
	Elapsed float64 // seconds since the first frame
	Frame   uint64

	start, last time.Time
}

// Advance moves the clock to now. The first call only starts the clock.
func (t *Time) Advance(now time.Time) {
	if t.start.IsZero() {
		t.start = now
		t.last = now
		return
	}
	t.Delta = float32(now.Sub(t.last).Seconds())
	t.Elapsed = now.Sub(t.start).Seconds()
	t.last = now
	t.Frame++
}

type World struct {
	Scene *scene.Scene
	Time  Time

	markers   *intmap.Map[uint32, Marker]
	resources map[reflect.Type]any
}

func New() *World {
	return &World{
		Scene:     scene.NewScene(),
		markers:   intmap.New[uint32, Marker](64),
		resources: make(map[reflect.Type]any),
	}
}

// Spawn attaches node to the scene root and tags it with markers.
func (w *World) Spawn(node *scene.Node, markers ...Marker) *scene.Node {
	w.Scene.AddNode(node)
	w.Mark(node, markers...)
	return node
}

// Mark adds markers to node.
func (w *World) Mark(node *scene.Node, markers ...Marker) {
	if len(markers) == 0 {
		return
	}
	mask, _ := w.markers.Get(node.Id)
	w.markers.Put(node.Id, mask|maskOf(markers))
}

// Despawn detaches node and forgets the markers of it and its children.
func (w *World) Despawn(node *scene.Node) {
	w.Scene.RemoveNode(node)
	node.Traverse(func(n *scene.Node) {
		w.markers.Del(n.Id)
	})
}

// Has reports whether node carries every marker given.
func (w *World) Has(node *scene.Node, markers ...Marker) bool {
	mask, ok := w.markers.Get(node.Id)
	if !ok {
		return false
	}
	want := maskOf(markers)
	return mask&want == want
}

// Query yields the nodes carrying all markers, in scene traversal order.
// Calling it without markers yields every tagged node.
func (w *World) Query(markers ...Marker) iter.Seq[*scene.Node] {
	want := maskOf(markers)
	return func(yield func(*scene.Node) bool) {
		var walk func(n *scene.Node) bool
		walk = func(n *scene.Node) bool {
			if mask, ok := w.markers.Get(n.Id); ok && mask&want == want {
				if !yield(n) {
					return false
				}
			}
			for _, child := range n.Children {
				if !walk(child) {
					return false
				}
			}
			return true
		}
		walk(w.Scene.Root)
	}
}

// Tagged returns how many nodes carry at least one marker.
func (w *World) Tagged() int {
	return w.markers.Len()
}

// Insert stores value as the resource of type T, replacing any previous one.
// The returned pointer stays valid until the next Insert of T.
func Insert[T any](w *World, value T) *T {
	p := new(T)
	*p = value
	w.resources[reflect.TypeFor[T]()] = p
	return p
}

// Resource returns the resource of type T.
func Resource[T any](w *World) (*T, bool) {
	v, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// MustResource is Resource for resources inserted at startup; a missing one
// is a wiring bug and panics.
func MustResource[T any](w *World) *T {
	v, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("world: resource %s not inserted", reflect.TypeFor[T]()))
	}
	return v
}

// Remove drops the resource of type T.
func Remove[T any](w *World) {
	delete(w.resources, reflect.TypeFor[T]())
}
